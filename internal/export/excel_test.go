package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/propscope/feasibility/pkg/feasibility"
	"github.com/xuri/excelize/v2"
)

func sampleStudy(t *testing.T) feasibility.Study {
	t.Helper()
	now, err := time.Parse(time.RFC3339, "2026-08-29T12:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return feasibility.Compute(feasibility.Input{
		ProjectName:       "Riverside Towers",
		Location:          "Austin, TX",
		ProjectType:       feasibility.ProjectTypeResidential,
		Notes:             "Phase one of two.",
		PlotArea:          "20000",
		BuiltUpArea:       "45000",
		NumberOfUnits:     "12",
		LandCost:          "100000",
		ConstructionCost:  "300000",
		ProfessionalFees:  "20000",
		MarketingCosts:    "10000",
		Contingency:       "15000",
		FinancingCosts:    "5000",
		AverageSalePrice:  "50000",
		MaintenanceCosts:  "8000",
		ManagementFees:    "6000",
		Utilities:         "3000",
		Insurance:         "2000",
		PropertyTax:       "4000",
		DevelopmentPeriod: "12",
		SalesPeriod:       "6",
	}, "study-1", now, now)
}

func TestWorkbookHasBothSheets(t *testing.T) {
	f, err := Workbook(sampleStudy(t))
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary" || sheets[1] != "Business Plan" {
		t.Errorf("sheets = %v, expected [Summary, Business Plan]", sheets)
	}
}

func TestWorkbookSummaryValues(t *testing.T) {
	study := sampleStudy(t)
	f, err := Workbook(study)
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	tests := []struct {
		cell     string
		expected string
	}{
		{"A1", "PROJECT FEASIBILITY STUDY"},
		{"A4", "Project Name"},
		{"B4", "Riverside Towers"},
		{"B5", "Austin, TX"},
		{"B6", "Residential"},
		{"A15", "Land Cost"},
		{"B15", "$100,000"},
		{"B21", "$450,000"},
		{"B25", "$600,000"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue("Summary", tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", tt.cell, err)
		}
		if got != tt.expected {
			t.Errorf("Summary!%s = %q, expected %q", tt.cell, got, tt.expected)
		}
	}
}

func TestWorkbookBusinessPlanConclusion(t *testing.T) {
	study := sampleStudy(t)
	f, err := Workbook(study)
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows("Business Plan")
	if err != nil {
		t.Fatal(err)
	}

	var foundTitle, foundRisk, foundConclusion bool
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch {
		case row[0] == "BUSINESS PLAN - RIVERSIDE TOWERS":
			foundTitle = true
		case row[0] == "Market Risk" && len(row) > 1 && row[1] == "Medium - Contingency fund allocated":
			foundRisk = true
		case strings.HasPrefix(row[0], "Based on the comprehensive financial analysis"):
			foundConclusion = true
		}
	}
	if !foundTitle {
		t.Error("business plan title row missing")
	}
	if !foundRisk {
		t.Error("risk assessment table missing")
	}
	if !foundConclusion {
		t.Error("generated conclusion paragraph missing")
	}
}

func TestWriteWorkbookProducesXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(sampleStudy(t), &buf); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty workbook bytes")
	}

	// The produced bytes must open as a workbook again.
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("exported workbook does not re-open: %v", err)
	}
	_ = f.Close()
}

func TestFilenames(t *testing.T) {
	study := sampleStudy(t)
	now := study.CreatedAt

	if got := WorkbookFilename(study, now); got != "Riverside_Towers_Feasibility_2026-08-29.xlsx" {
		t.Errorf("WorkbookFilename() = %q", got)
	}
	if got := ReportFilename(study, now); got != "Riverside_Towers_Feasibility_2026-08-29.pdf" {
		t.Errorf("ReportFilename() = %q", got)
	}

	study.ProjectName = "Pier 7 / East"
	if got := WorkbookFilename(study, now); got != "Pier_7___East_Feasibility_2026-08-29.xlsx" {
		t.Errorf("WorkbookFilename() with punctuation = %q", got)
	}
}
