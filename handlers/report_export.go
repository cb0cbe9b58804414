package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"p9e.in/landapp/middleware"
	"p9e.in/landapp/models"
	"p9e.in/landapp/pkg/reporting"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	detailedSheet   = "Detailed Report"
	summarySheet    = "Summary Report"

	// first data row of the detailed sheet; row 4 holds the headers
	detailedFirstRow = 5
)

// ExportDetailedReportExcel handles GET /reports/detailed/{id}/export/excel
func (h *IrrigationReportHandlers) ExportDetailedReportExcel(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := requestScope(w, r, "id")
	if !ok {
		return
	}

	row, err := h.service.GetDetailedReport(r.Context(), companyID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	f, err := createDetailedWorkbook(row.ToReporting())
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("detailed_%s_%s.xlsx", row.FacilityID, row.Period())
	writeDownload(w, filename, xlsxContentType, buffer.Bytes())
}

// ExportSummaryReportExcel handles GET /reports/summary/{id}/export/excel
func (h *IrrigationReportHandlers) ExportSummaryReportExcel(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := requestScope(w, r, "id")
	if !ok {
		return
	}

	row, err := h.service.GetSummaryReport(r.Context(), companyID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	f, err := createSummaryWorkbook(row)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("summary_%s_%s.xlsx", row.FacilityID, row.Period())
	writeDownload(w, filename, xlsxContentType, buffer.Bytes())
}

// ExportSummaryReportsCSV handles GET /reports/summary/export/csv?facilityId=
func (h *IrrigationReportHandlers) ExportSummaryReportsCSV(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.EffectiveCompanyID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var facilityID *uuid.UUID
	if raw := r.URL.Query().Get("facilityId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid facilityId", http.StatusBadRequest)
			return
		}
		facilityID = &id
	}

	rows, err := h.service.ListSummaryReports(r.Context(), companyID, facilityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := createSummaryCSV(rows)
	if err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("summary_reports_%s.csv", time.Now().Format("20060102_150405"))
	writeDownload(w, filename, "text/csv", data)
}

func writeDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", sanitizeFilename(filename)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// displayNumber rounds a stored figure for the spreadsheet.
func displayNumber(d decimal.Decimal, places int32) float64 {
	return d.Round(places).InexactFloat64()
}

func seriesCell[T any](s reporting.DailySeries[T], day int) interface{} {
	v, ok := s.Get(day)
	if !ok {
		return nil
	}
	if d, isDecimal := any(v).(decimal.Decimal); isDecimal {
		return displayNumber(d, 4)
	}
	return v
}

// createDetailedWorkbook lays out one row per day of the month, the
// facility observations first and then four columns per configured field,
// followed by the monthly totals of each field.
func createDetailedWorkbook(report reporting.DetailedMonthlyReport) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(detailedSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
	})

	f.SetCellValue(detailedSheet, "A1", fmt.Sprintf("Detailed Monthly Report %s", report.Period))
	f.SetCellStyle(detailedSheet, "A1", "A1", titleStyle)
	f.SetRowHeight(detailedSheet, 1, 30)
	irrigated := "No"
	if report.DidIrrigationOccur {
		irrigated = "Yes"
	}
	f.SetCellValue(detailedSheet, "A2", fmt.Sprintf("Facility: %s    Irrigation occurred: %s", report.FacilityID, irrigated))

	headers := []string{"Day", "Weather", "Temperature (°F)", "Precipitation (in)", "Storage Level (ft)", "Upset"}
	fieldCols := make(map[int]int) // slot index -> first column
	for i, field := range report.Fields {
		if !field.Configured() {
			continue
		}
		fieldCols[i] = len(headers) + 1
		name := field.SprayfieldName
		if name == "" {
			name = fmt.Sprintf("Field %d", field.Slot)
		}
		headers = append(headers,
			name+" Volume (gal)",
			name+" Minutes",
			name+" Loading (in)",
			name+" Max Hourly (in/hr)")
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 4)
		f.SetCellValue(detailedSheet, cell, header)
		f.SetCellStyle(detailedSheet, cell, cell, headerStyle)
		f.SetColWidth(detailedSheet, columnIndexToLetter(col+1), columnIndexToLetter(col+1), 16)
	}

	days := report.Period.Days()
	for day := 1; day <= days; day++ {
		row := detailedFirstRow + day - 1
		values := []interface{}{
			day,
			seriesCell(report.Weather, day),
			seriesCell(report.Temperature, day),
			seriesCell(report.Precipitation, day),
			seriesCell(report.StorageLevel, day),
			seriesCell(report.Upset, day),
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(detailedSheet, cell, v)
		}
		for i, start := range fieldCols {
			field := report.Fields[i]
			for offset, v := range []interface{}{
				seriesCell(field.Volume, day),
				seriesCell(field.Minutes, day),
				seriesCell(field.DailyLoading, day),
				seriesCell(field.MaxHourlyLoading, day),
			} {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(start+offset, row)
				f.SetCellValue(detailedSheet, cell, v)
			}
		}
	}

	totalsRow := detailedFirstRow + days + 1
	for n, label := range []string{"Monthly Loading (in)", "Max Hourly Loading (in/hr)", "12-Month Floating Total (in)"} {
		cell, _ := excelize.CoordinatesToCellName(1, totalsRow+n)
		f.SetCellValue(detailedSheet, cell, label)
		f.SetCellStyle(detailedSheet, cell, cell, totalStyle)
	}
	for i, start := range fieldCols {
		field := report.Fields[i]
		loadingCol := start + 2
		for n, v := range []decimal.Decimal{field.MonthlyLoading, field.MaxHourlyLoadingForMonth, field.FloatingTotal} {
			cell, _ := excelize.CoordinatesToCellName(loadingCol, totalsRow+n)
			f.SetCellValue(detailedSheet, cell, displayNumber(v, 4))
			f.SetCellStyle(detailedSheet, cell, cell, totalStyle)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// summaryFigures are the label/value pairs shared by the Excel and CSV exports.
func summaryFigures(r *models.SummaryMonthlyReport) [][2]interface{} {
	return [][2]interface{}{
		{"Facility", r.FacilityID.String()},
		{"Period", r.Period().String()},
		{"Total Volume Applied (gal)", displayNumber(r.TotalVolumeApplied, 0)},
		{"Total Application Rate (in)", displayNumber(r.TotalApplicationRate, 4)},
		{"Hydraulic Loading Rate (in/yr)", displayNumber(r.HydraulicLoadingRate, 2)},
		{"Hydraulic Loading Limit (in/yr)", displayNumber(r.HydraulicLoadingLimit, 2)},
		{"Nitrogen Loading Rate (lbs/ac/yr)", displayNumber(r.NitrogenLoadingRate, 2)},
		{"PAN Uptake Rate (lbs/ac/yr)", displayNumber(r.PANUptakeRate, 2)},
		{"Application Efficiency (%)", displayNumber(r.ApplicationEfficiency, 1)},
		{"Irrigation Events", r.EventCount},
		{"Weather", r.WeatherSummary},
		{"Compliance Status", r.ComplianceStatus},
	}
}

func createSummaryWorkbook(r *models.SummaryMonthlyReport) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	labelStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	f.SetCellValue(summarySheet, "A1", "Irrigation Summary Report")
	f.SetCellStyle(summarySheet, "A1", "A1", titleStyle)
	f.SetColWidth(summarySheet, "A", "A", 36)
	f.SetColWidth(summarySheet, "B", "B", 40)

	for i, pair := range summaryFigures(r) {
		row := i + 3
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(summarySheet, labelCell, pair[0])
		f.SetCellStyle(summarySheet, labelCell, labelCell, labelStyle)
		f.SetCellValue(summarySheet, valueCell, pair[1])
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// createSummaryCSV writes one row per summary report under a header row.
func createSummaryCSV(rows []models.SummaryMonthlyReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{}
	for _, pair := range summaryFigures(&models.SummaryMonthlyReport{}) {
		headers = append(headers, fmt.Sprint(pair[0]))
	}
	writer.Write(headers)

	for i := range rows {
		record := []string{}
		for _, pair := range summaryFigures(&rows[i]) {
			record = append(record, fmt.Sprintf("%v", pair[1]))
		}
		writer.Write(record)
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func sanitizeFilename(filename string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}

	result := []rune{}
	for _, char := range filename {
		if replacement, exists := replacements[char]; exists {
			result = append(result, replacement)
		} else {
			result = append(result, char)
		}
	}
	return string(result)
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
