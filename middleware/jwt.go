package middleware

import (
	"context"
	"errors"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin may act on behalf of any company.
const RoleAdmin = "admin"

// CompanyHeader lets an admin pick the company a request runs against.
const CompanyHeader = "X-Company-ID"

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// SetSigningKey replaces the HMAC key read from JWT_SECRET at start-up.
func SetSigningKey(secret string) {
	if secret != "" {
		jwtKey = []byte(secret)
	}
}

// Claims are the custom payload in our JWT
type Claims struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	CompanyID string `json:"companyId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// unexported type prevents collisions in context
type ctxKey int

const (
	userClaimsKey ctxKey = iota
)

// GenerateToken creates a signed JWT valid for 24 h
func GenerateToken(userID, name, companyID, role string) (string, error) {
	claims := Claims{
		UserID:    userID,
		Name:      name,
		CompanyID: companyID,
		Role:      role,

		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// JWTMiddleware validates the token and stashes the Claims in ctx
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid auth header", http.StatusUnauthorized)
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// WithClaims attaches claims to ctx the way JWTMiddleware does.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, userClaimsKey, c)
}

func RequireRole(roles []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.Contains(roles, GetRole(r)) {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	})
}

// GetClaims pulls the *Claims out of the request context (or nil)
func GetClaims(r *http.Request) *Claims {
	if c, ok := r.Context().Value(userClaimsKey).(*Claims); ok {
		return c
	}
	return nil
}

func GetUserID(r *http.Request) string {
	if c := GetClaims(r); c != nil {
		return c.UserID
	}
	return ""
}

func GetRole(r *http.Request) string {
	if c := GetClaims(r); c != nil {
		return c.Role
	}
	return ""
}

var (
	ErrNoCompany      = errors.New("token carries no company")
	ErrInvalidCompany = errors.New("invalid company id")
)

// EffectiveCompanyID resolves the company a request acts for: the token's
// company, or for an admin the company named in the X-Company-ID header.
func EffectiveCompanyID(r *http.Request) (uuid.UUID, error) {
	c := GetClaims(r)
	if c == nil {
		return uuid.Nil, ErrNoCompany
	}

	raw := c.CompanyID
	if c.Role == RoleAdmin {
		if override := strings.TrimSpace(r.Header.Get(CompanyHeader)); override != "" {
			raw = override
		}
	}
	if raw == "" {
		return uuid.Nil, ErrNoCompany
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidCompany
	}
	return id, nil
}
