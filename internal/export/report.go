package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/propscope/feasibility/pkg/feasibility"
	"github.com/propscope/feasibility/pkg/format"
)

const (
	reportMargin = 14.0
	// breakThreshold is the Y position past which a new section starts on a
	// fresh page instead of spilling over the footer.
	breakThreshold = 240.0
)

type tableRow struct {
	label string
	value string
}

// Report renders a study into a paginated A4 document: a title block, a
// shaded executive-summary panel, and tabular sections for project details,
// costs, revenue and expenses, financial analysis, timeline, and notes. Every
// page carries a "Page N of M" footer.
func Report(study feasibility.Study, now time.Time) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(reportMargin, 15, reportMargin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()

	// Title block
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "PROJECT FEASIBILITY STUDY", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(41, 128, 185)
	pdf.CellFormat(0, 8, study.ProjectName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s | %s", study.Location, study.ProjectType), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Generated: "+now.Format("2006-01-02"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeSummaryPanel(pdf, study, pageWidth)

	writeSection(pdf, "1. PROJECT DETAILS", "Attribute", "Value", []tableRow{
		{"Plot Area", format.Number(study.PlotArea) + " sq ft"},
		{"Built-up Area", format.Number(study.BuiltUpArea) + " sq ft"},
		{"Number of Units", format.Number(study.NumberOfUnits)},
		{"Average Price per Unit", format.Currency(study.AverageSalePrice)},
	}, nil)

	writeSection(pdf, "2. DEVELOPMENT COSTS", "Cost Category", "Amount", []tableRow{
		{"Land Acquisition", format.Currency(study.LandCost)},
		{"Construction", format.Currency(study.ConstructionCost)},
		{"Professional Fees", format.Currency(study.ProfessionalFees)},
		{"Marketing & Sales", format.Currency(study.MarketingCosts)},
		{"Contingency", format.Currency(study.Contingency)},
		{"Financing Costs", format.Currency(study.FinancingCosts)},
	}, &tableRow{"Total Development Cost", format.Currency(study.TotalDevelopmentCost)})

	writeSection(pdf, "3. REVENUE & OPERATING EXPENSES", "Item", "Amount", []tableRow{
		{"Total Revenue", format.Currency(study.TotalRevenue)},
		{"Annual Operating Expenses:", ""},
		{"  Maintenance", format.Currency(study.MaintenanceCosts)},
		{"  Management Fees", format.Currency(study.ManagementFees)},
		{"  Utilities", format.Currency(study.Utilities)},
		{"  Insurance", format.Currency(study.Insurance)},
		{"  Property Tax", format.Currency(study.PropertyTax)},
	}, &tableRow{"Total Operating Expenses", format.Currency(study.TotalOperatingExpenses)})

	writeSection(pdf, "4. FINANCIAL ANALYSIS", "Metric", "Value", []tableRow{
		{"Gross Profit", format.Currency(study.GrossProfit)},
		{"Gross Profit Margin", format.Number(study.GrossProfitMargin) + "%"},
		{"Net Profit", format.Currency(study.NetProfit)},
		{"Net Profit Margin", format.Number(study.NetProfitMargin) + "%"},
		{"Return on Investment (ROI)", format.Number(study.ROI) + "%"},
		{"Break-even Point", format.Number(study.BreakEvenPoint) + " units"},
		{"Payback Period", format.Number(study.PaybackPeriod) + " years"},
		{"Internal Rate of Return (IRR)", format.Number(study.IRR) + "%"},
		{"Net Present Value (NPV)", format.Currency(study.NPV)},
	}, nil)

	writeSection(pdf, "5. PROJECT TIMELINE", "Phase", "Duration", []tableRow{
		{"Development Period", format.Number(study.DevelopmentPeriod) + " months"},
		{"Sales Period", format.Number(study.SalesPeriod) + " months"},
		{"Total Project Duration", format.Number(study.TotalProjectDuration) + " months"},
	}, nil)

	if study.Notes != "" {
		ensureRoom(pdf)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(41, 128, 185)
		pdf.CellFormat(0, 8, "6. NOTES", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 5, study.Notes, "", "L", false)
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

// WriteReport renders the report and writes the PDF bytes to w.
func WriteReport(study feasibility.Study, now time.Time, w io.Writer) error {
	pdf, err := Report(study, now)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func writeSummaryPanel(pdf *fpdf.Fpdf, study feasibility.Study, pageWidth float64) {
	top := pdf.GetY()
	panelWidth := pageWidth - 2*reportMargin

	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(reportMargin, top, panelWidth, 35, "F")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(reportMargin+5, top+4)
	pdf.CellFormat(0, 6, "EXECUTIVE SUMMARY", "", 1, "L", false, 0, "")

	col1 := reportMargin + 5
	col2 := pageWidth/2 + 5
	pdf.SetFont("Helvetica", "", 10)

	rows := [][2]string{
		{"Total Investment: " + format.Currency(study.TotalDevelopmentCost), "Expected Revenue: " + format.Currency(study.TotalRevenue)},
		{"Net Profit: " + format.Currency(study.NetProfit), "Profit Margin: " + format.Number(study.NetProfitMargin) + "%"},
		{"ROI: " + format.Number(study.ROI) + "%", "Payback Period: " + format.Number(study.PaybackPeriod) + " years"},
	}
	y := top + 12
	for _, row := range rows {
		pdf.SetXY(col1, y)
		pdf.CellFormat(0, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetXY(col2, y)
		pdf.CellFormat(0, 6, row[1], "", 0, "L", false, 0, "")
		y += 7
	}

	pdf.SetY(top + 35 + 8)
}

func writeSection(pdf *fpdf.Fpdf, title, labelHead, valueHead string, rows []tableRow, total *tableRow) {
	ensureRoom(pdf)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(41, 128, 185)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	labelWidth := (pageWidth - 2*reportMargin) * 0.6
	valueWidth := (pageWidth - 2*reportMargin) * 0.4

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(labelWidth, 7, labelHead, "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueWidth, 7, valueHead, "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)
		pdf.CellFormat(labelWidth, 6, row.label, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(valueWidth, 6, row.value, "1", 1, "R", fill, 0, "")
	}

	if total != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(52, 73, 94)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(labelWidth, 7, total.label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueWidth, 7, total.value, "1", 1, "R", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(8)
}

func ensureRoom(pdf *fpdf.Fpdf) {
	if pdf.GetY() > breakThreshold {
		pdf.AddPage()
	}
}
