package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"p9e.in/landapp/pkg/reporting"
)

const squareMetersPerAcre = 4046.8564224

// Company owns facilities; every request is scoped to one company.
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Facility is a permitted wastewater land-application site.
type Facility struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"companyId"`
	Name         string         `gorm:"size:150;not null" json:"name"`
	PermitNumber string         `gorm:"size:50;index" json:"permitNumber"`
	County       string         `gorm:"size:100" json:"county,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Crop is a cover crop with its annual nitrogen uptake.
type Crop struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	NitrogenUptake decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"nitrogenUptake"` // lbs N / acre / year
	PANFactor      decimal.Decimal `gorm:"column:pan_factor;type:numeric(6,4);not null;default:1" json:"panFactor"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Sprayfield is one land-application area of a facility.
type Sprayfield struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FacilityID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"facilityId"`
	Name                  string          `gorm:"size:100;not null" json:"name"`
	Acres                 decimal.Decimal `gorm:"type:numeric(10,4)" json:"acres"`
	Boundary              datatypes.JSON  `gorm:"type:jsonb" json:"boundary,omitempty"` // GeoJSON polygon or feature
	CropID                *uuid.UUID      `gorm:"type:uuid" json:"cropId,omitempty"`
	Crop                  *Crop           `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	HydraulicLimitPerYear decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0" json:"hydraulicLimitPerYear"` // inches / year
	IsActive              bool            `gorm:"default:true" json:"isActive"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate hooks assign ids the same way for every catalogue table.
func (c *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

func (f *Facility) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

func (c *Crop) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

func (s *Sprayfield) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// BoundaryAcres computes the geodesic area of the stored GeoJSON boundary.
func (s *Sprayfield) BoundaryAcres() (decimal.Decimal, error) {
	if len(s.Boundary) == 0 {
		return decimal.Zero, nil
	}

	var geom orb.Geometry
	if g, err := geojson.UnmarshalGeometry(s.Boundary); err == nil && g.Coordinates != nil {
		geom = g.Geometry()
	} else if f, ferr := geojson.UnmarshalFeature(s.Boundary); ferr == nil && f.Geometry != nil {
		geom = f.Geometry
	} else {
		return decimal.Zero, fmt.Errorf("sprayfield %s: boundary is not a GeoJSON geometry or feature", s.ID)
	}

	switch geom.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return decimal.Zero, fmt.Errorf("sprayfield %s: boundary is a %s, expected a polygon", s.ID, geom.GeoJSONType())
	}

	return decimal.NewFromFloat(math.Abs(geo.Area(geom)) / squareMetersPerAcre).Round(4), nil
}

// EffectiveAcres is the surveyed acreage, or the boundary area when no
// acreage was entered.
func (s *Sprayfield) EffectiveAcres() decimal.Decimal {
	if s.Acres.IsPositive() {
		return s.Acres
	}
	acres, err := s.BoundaryAcres()
	if err != nil {
		return decimal.Zero
	}
	return acres
}

// ToReporting converts the row into the engine's read-only view.
func (s *Sprayfield) ToReporting() reporting.SprayField {
	out := reporting.SprayField{
		ID:                    s.ID,
		FacilityID:            s.FacilityID,
		Name:                  s.Name,
		Acres:                 s.EffectiveAcres(),
		HydraulicLimitPerYear: s.HydraulicLimitPerYear,
	}
	if s.Crop != nil {
		out.Crop = &reporting.Crop{
			Name:           s.Crop.Name,
			NitrogenUptake: s.Crop.NitrogenUptake,
			PANFactor:      s.Crop.PANFactor,
		}
	}
	return out
}
