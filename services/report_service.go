package services

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"code_enforce_app_go/models"

	"github.com/xuri/excelize/v2"
)

// StreetReportRow is one line of the patrol-route report.
type StreetReportRow struct {
	CaseID             string `json:"caseId"`
	RecordID           string `json:"recordId"`
	StreetAddress      string `json:"streetAddress"`
	Status             string `json:"status"`
	TimeStatus         string `json:"timeStatus"`
	ViolationType      string `json:"violationType"`
	OwnerName          string `json:"ownerName"`
	ComplianceDeadline string `json:"complianceDeadline"`
	DateCreated        string `json:"dateCreated"`
}

// BuildStreetReport lists open cases in patrol-route order so an officer can
// drive the route top to bottom. Closed cases are left out unless
// includeClosed is set, in which case they trail the report in the same
// street order.
func BuildStreetReport(cases []models.Case, today time.Time, includeClosed bool) []StreetReportRow {
	var open, closed []models.Case
	for _, c := range cases {
		if c.IsClosed() {
			closed = append(closed, c)
			continue
		}
		open = append(open, c)
	}

	byRoute := func(list []models.Case) {
		sort.SliceStable(list, func(i, j int) bool {
			return CompareStreets(list[i].Address.Street, list[j].Address.Street) < 0
		})
	}
	byRoute(open)

	rows := make([]StreetReportRow, 0, len(open)+len(closed))
	for _, c := range open {
		rows = append(rows, streetReportRow(c, today))
	}
	if includeClosed {
		byRoute(closed)
		for _, c := range closed {
			rows = append(rows, streetReportRow(c, today))
		}
	}
	return rows
}

func streetReportRow(c models.Case, today time.Time) StreetReportRow {
	return StreetReportRow{
		CaseID:             c.CaseID,
		RecordID:           c.ID,
		StreetAddress:      c.Address.Street,
		Status:             c.Status,
		TimeStatus:         TimeStatus(&c, today),
		ViolationType:      c.Violation.Type,
		OwnerName:          c.OwnerInfo.Name,
		ComplianceDeadline: c.ComplianceDeadline,
		DateCreated:        c.DateCreated,
	}
}

// GenerateStreetReportXLSX renders the patrol-route report as a spreadsheet
// for printing or handing off outside the system.
func GenerateStreetReportXLSX(rows []StreetReportRow, generatedAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Street Report"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	f.SetCellValue(sheet, "A1", "Code Enforcement Street Report")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", "Generated "+FormatLongDate(generatedAt))

	headers := []string{"Case #", "Address", "Status", "Time Status", "Violation", "Owner", "Deadline", "Opened"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A4", "H4", headerStyle)

	for i, row := range rows {
		r := i + 5
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.CaseID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.StreetAddress)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.TimeStatus)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.ViolationType)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.OwnerName)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.ComplianceDeadline)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", r), row.DateCreated)
	}
	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// AbatementReportRow is one billed abatement in the cost report.
type AbatementReportRow struct {
	CaseID        string  `json:"caseId"`
	StreetAddress string  `json:"streetAddress"`
	WorkDate      string  `json:"workDate"`
	CostType      string  `json:"costType"`
	Employees     int     `json:"employees"`
	Hours         float64 `json:"hours"`
	Rate          float64 `json:"rate"`
	AdminFee      float64 `json:"adminFee"`
	Total         float64 `json:"total"`
}

// AbatementReport summarizes city-performed abatement work and its billed
// costs across all cases that carry cost details.
type AbatementReport struct {
	Rows       []AbatementReportRow `json:"rows"`
	GrandTotal float64              `json:"grandTotal"`
}

// BuildAbatementReport collects every case with billed abatement costs, in
// patrol-route order, and totals the amounts owed to the city.
func BuildAbatementReport(cases []models.Case) AbatementReport {
	report := AbatementReport{Rows: []AbatementReportRow{}}

	var billed []models.Case
	for _, c := range cases {
		if c.Abatement != nil && c.Abatement.CostDetails != nil {
			billed = append(billed, c)
		}
	}
	sort.SliceStable(billed, func(i, j int) bool {
		return CompareStreets(billed[i].Address.Street, billed[j].Address.Street) < 0
	})

	for _, c := range billed {
		cost := c.Abatement.CostDetails
		total := cost.ComputeTotal()
		report.Rows = append(report.Rows, AbatementReportRow{
			CaseID:        c.CaseID,
			StreetAddress: c.Address.Street,
			WorkDate:      c.Abatement.WorkDate,
			CostType:      cost.Type,
			Employees:     cost.Employees,
			Hours:         cost.Hours,
			Rate:          cost.Rate,
			AdminFee:      cost.AdminFee,
			Total:         total,
		})
		report.GrandTotal += total
	}
	return report
}
