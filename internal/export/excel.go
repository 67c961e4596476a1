// Package export renders fully computed studies into downloadable artifacts.
// Exporters are pure consumers: they never recompute metrics, and all numeric
// rendering goes through pkg/format so the workbook, the report, and the
// in-app summary always show identical values.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/propscope/feasibility/pkg/feasibility"
	"github.com/propscope/feasibility/pkg/format"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet      = "Summary"
	businessPlanSheet = "Business Plan"

	// currencyNumFmt is the fixed locale pattern applied to currency cells.
	currencyNumFmt = "$#,##0"
)

// cell is one row of a key/value sheet section. Currency rows get the
// currency number format applied to the value cell.
type cell struct {
	label    string
	value    interface{}
	currency bool
}

func heading(s string) cell { return cell{label: s} }

func blank() cell { return cell{} }

func text(label, v string) cell { return cell{label: label, value: v} }

func num(label string, v float64) cell { return cell{label: label, value: v} }

func money(label string, v float64) cell { return cell{label: label, value: v, currency: true} }

// Workbook renders a study into a two-worksheet workbook: a flat "Summary"
// sheet and a prose-annotated "Business Plan" sheet. The caller owns the
// returned file and should Close it when done.
func Workbook(study feasibility.Study) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(businessPlanSheet); err != nil {
		return nil, err
	}

	numFmt := currencyNumFmt
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}

	if err := writeRows(f, summarySheet, currencyStyle, summaryRows(study)); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 30); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 20); err != nil {
		return nil, err
	}

	if err := writeRows(f, businessPlanSheet, currencyStyle, businessPlanRows(study)); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(businessPlanSheet, "A", "A", 35); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(businessPlanSheet, "B", "B", 20); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteWorkbook renders the workbook and writes the xlsx bytes to w.
func WriteWorkbook(study feasibility.Study, w io.Writer) error {
	f, err := Workbook(study)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return f.Write(w)
}

// WorkbookFilename returns the download filename for a study's workbook,
// e.g. "Riverside_Towers_Feasibility_2026-08-29.xlsx".
func WorkbookFilename(study feasibility.Study, now time.Time) string {
	return fmt.Sprintf("%s_Feasibility_%s.xlsx", sanitizeName(study.ProjectName), now.Format("2006-01-02"))
}

// ReportFilename returns the download filename for a study's report document.
func ReportFilename(study feasibility.Study, now time.Time) string {
	return fmt.Sprintf("%s_Feasibility_%s.pdf", sanitizeName(study.ProjectName), now.Format("2006-01-02"))
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

func writeRows(f *excelize.File, sheet string, currencyStyle int, rows []cell) error {
	for i, row := range rows {
		rowNum := i + 1
		if row.label != "" {
			if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.label); err != nil {
				return err
			}
		}
		if row.value != nil {
			valueCell := fmt.Sprintf("B%d", rowNum)
			if err := f.SetCellValue(sheet, valueCell, row.value); err != nil {
				return err
			}
			if row.currency {
				if err := f.SetCellStyle(sheet, valueCell, valueCell, currencyStyle); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func summaryRows(study feasibility.Study) []cell {
	return []cell{
		heading("PROJECT FEASIBILITY STUDY"),
		blank(),
		heading("Project Information"),
		text("Project Name", study.ProjectName),
		text("Location", study.Location),
		text("Project Type", study.ProjectType),
		text("Created", study.CreatedAt.Format("2006-01-02")),
		blank(),
		heading("Project Details"),
		num("Plot Area (sq ft)", study.PlotArea),
		num("Built-up Area (sq ft)", study.BuiltUpArea),
		num("Number of Units", study.NumberOfUnits),
		blank(),
		heading("DEVELOPMENT COSTS"),
		money("Land Cost", study.LandCost),
		money("Construction Cost", study.ConstructionCost),
		money("Professional Fees", study.ProfessionalFees),
		money("Marketing Costs", study.MarketingCosts),
		money("Contingency", study.Contingency),
		money("Financing Costs", study.FinancingCosts),
		money("Total Development Cost", study.TotalDevelopmentCost),
		blank(),
		heading("REVENUE"),
		money("Average Sale Price per Unit", study.AverageSalePrice),
		money("Total Revenue", study.TotalRevenue),
		blank(),
		heading("OPERATING EXPENSES (Annual)"),
		money("Maintenance Costs", study.MaintenanceCosts),
		money("Management Fees", study.ManagementFees),
		money("Utilities", study.Utilities),
		money("Insurance", study.Insurance),
		money("Property Tax", study.PropertyTax),
		money("Total Operating Expenses", study.TotalOperatingExpenses),
		blank(),
		heading("FINANCIAL METRICS"),
		money("Gross Profit", study.GrossProfit),
		text("Gross Profit Margin (%)", fmt.Sprintf("%.2f", study.GrossProfitMargin)),
		money("Net Profit", study.NetProfit),
		text("Net Profit Margin (%)", fmt.Sprintf("%.2f", study.NetProfitMargin)),
		text("ROI (%)", fmt.Sprintf("%.2f", study.ROI)),
		num("Break-Even Point (Units)", study.BreakEvenPoint),
		text("Payback Period (Years)", fmt.Sprintf("%.2f", study.PaybackPeriod)),
		text("IRR (%)", fmt.Sprintf("%.2f", study.IRR)),
		money("NPV", study.NPV),
		blank(),
		heading("TIMELINE"),
		num("Development Period (Months)", study.DevelopmentPeriod),
		num("Sales Period (Months)", study.SalesPeriod),
		num("Total Project Duration (Months)", study.TotalProjectDuration),
		blank(),
		heading("Notes"),
		heading(study.Notes),
	}
}

func businessPlanRows(study feasibility.Study) []cell {
	notes := study.Notes
	if notes == "" {
		notes = "N/A"
	}
	return []cell{
		heading("BUSINESS PLAN - " + strings.ToUpper(study.ProjectName)),
		blank(),
		heading("EXECUTIVE SUMMARY"),
		blank(),
		heading("Project Overview"),
		heading(fmt.Sprintf("%s is a %s development project located in %s. The project comprises %s units across %s sq ft of built-up area.",
			study.ProjectName, study.ProjectType, study.Location,
			format.Number(study.NumberOfUnits), format.Number(study.BuiltUpArea))),
		blank(),
		heading("Financial Highlights"),
		heading("Total Investment Required: " + format.Currency(study.TotalDevelopmentCost)),
		heading("Expected Total Revenue: " + format.Currency(study.TotalRevenue)),
		heading("Net Profit: " + format.Currency(study.NetProfit)),
		heading(fmt.Sprintf("Return on Investment: %.2f%%", study.ROI)),
		heading(fmt.Sprintf("Payback Period: %.1f years", study.PaybackPeriod)),
		blank(),
		heading("1. PROJECT DESCRIPTION"),
		blank(),
		heading("Location & Size"),
		heading("Location: " + study.Location),
		heading(fmt.Sprintf("Plot Area: %s sq ft", format.Number(study.PlotArea))),
		heading(fmt.Sprintf("Built-up Area: %s sq ft", format.Number(study.BuiltUpArea))),
		heading("Development Type: " + study.ProjectType),
		heading("Total Units: " + format.Number(study.NumberOfUnits)),
		blank(),
		heading("2. FINANCIAL PLAN"),
		blank(),
		heading("2.1 Development Costs"),
		text("Category", "Amount"),
		money("Land Acquisition", study.LandCost),
		money("Construction", study.ConstructionCost),
		money("Professional Fees", study.ProfessionalFees),
		money("Marketing & Sales", study.MarketingCosts),
		money("Contingency", study.Contingency),
		money("Financing Costs", study.FinancingCosts),
		money("Total", study.TotalDevelopmentCost),
		blank(),
		heading("2.2 Revenue Projections"),
		money("Average Price per Unit", study.AverageSalePrice),
		num("Total Units", study.NumberOfUnits),
		money("Total Expected Revenue", study.TotalRevenue),
		blank(),
		heading("2.3 Operating Expenses (Annual)"),
		money("Maintenance", study.MaintenanceCosts),
		money("Management", study.ManagementFees),
		money("Utilities", study.Utilities),
		money("Insurance", study.Insurance),
		money("Property Tax", study.PropertyTax),
		money("Total Operating Expenses", study.TotalOperatingExpenses),
		blank(),
		heading("3. FINANCIAL ANALYSIS"),
		blank(),
		heading("Profitability Metrics"),
		money("Gross Profit", study.GrossProfit),
		text("Gross Margin", fmt.Sprintf("%.2f%%", study.GrossProfitMargin)),
		money("Net Profit", study.NetProfit),
		text("Net Margin", fmt.Sprintf("%.2f%%", study.NetProfitMargin)),
		blank(),
		heading("Investment Returns"),
		text("Return on Investment (ROI)", fmt.Sprintf("%.2f%%", study.ROI)),
		text("Internal Rate of Return (IRR)", fmt.Sprintf("%.2f%%", study.IRR)),
		money("Net Present Value (NPV)", study.NPV),
		text("Break-even Point", format.Number(study.BreakEvenPoint)+" units"),
		text("Payback Period", fmt.Sprintf("%.1f years", study.PaybackPeriod)),
		blank(),
		heading("4. PROJECT TIMELINE"),
		blank(),
		text("Development Period", format.Number(study.DevelopmentPeriod)+" months"),
		text("Sales Period", format.Number(study.SalesPeriod)+" months"),
		text("Total Duration", format.Number(study.TotalProjectDuration)+" months"),
		blank(),
		heading("5. RISK ASSESSMENT & MITIGATION"),
		blank(),
		text("Market Risk", "Medium - Contingency fund allocated"),
		text("Construction Risk", "Low - Experienced contractors"),
		text("Financial Risk", "Medium - Multiple financing options"),
		text("Regulatory Risk", "Low - All permits in process"),
		blank(),
		heading("6. CONCLUSION"),
		blank(),
		heading(fmt.Sprintf("Based on the comprehensive financial analysis, %s presents a viable investment opportunity with an expected ROI of %.2f%% and a payback period of %.1f years. The project demonstrates strong financial fundamentals and market potential.",
			study.ProjectName, study.ROI, study.PaybackPeriod)),
		blank(),
		heading("Additional Notes"),
		heading(notes),
	}
}
