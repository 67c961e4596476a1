// Package output provides utilities for formatting and displaying study
// summaries on the command line.
package output

import (
	"fmt"

	"github.com/propscope/feasibility/pkg/constants"
	"github.com/propscope/feasibility/pkg/feasibility"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidateFormat checks that the requested output format is supported.
func ValidateFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format %q; must be one of: %s, %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}

// PrettyFormat outputs a human-readable summary of a computed study.
func PrettyFormat(study feasibility.Study) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Feasibility study: %s ---\n", study.ProjectName)
	fmt.Printf("%s | %s\n\n", study.Location, study.ProjectType)

	fmt.Printf("Development Costs\n")
	_, _ = p.Printf("  Land Cost               $%.0f\n", study.LandCost)
	_, _ = p.Printf("  Construction Cost       $%.0f\n", study.ConstructionCost)
	_, _ = p.Printf("  Professional Fees       $%.0f\n", study.ProfessionalFees)
	_, _ = p.Printf("  Marketing Costs         $%.0f\n", study.MarketingCosts)
	_, _ = p.Printf("  Contingency             $%.0f\n", study.Contingency)
	_, _ = p.Printf("  Financing Costs         $%.0f\n", study.FinancingCosts)
	_, _ = p.Printf("  Total                   $%.0f\n\n", study.TotalDevelopmentCost)

	fmt.Printf("Revenue & Expenses\n")
	_, _ = p.Printf("  Average Sale Price      $%.0f\n", study.AverageSalePrice)
	_, _ = p.Printf("  Number of Units         %.0f\n", study.NumberOfUnits)
	_, _ = p.Printf("  Total Revenue           $%.0f\n", study.TotalRevenue)
	_, _ = p.Printf("  Operating Expenses      $%.0f\n\n", study.TotalOperatingExpenses)

	fmt.Printf("Financial Metrics\n")
	_, _ = p.Printf("  Gross Profit            $%.0f\n", study.GrossProfit)
	_, _ = p.Printf("  Gross Profit Margin     %.2f%%\n", study.GrossProfitMargin)
	_, _ = p.Printf("  Net Profit              $%.0f\n", study.NetProfit)
	_, _ = p.Printf("  Net Profit Margin       %.2f%%\n", study.NetProfitMargin)
	_, _ = p.Printf("  ROI                     %.2f%%\n", study.ROI)
	_, _ = p.Printf("  Break-Even Point        %.0f units\n", study.BreakEvenPoint)
	_, _ = p.Printf("  Payback Period          %.2f years\n", study.PaybackPeriod)
	_, _ = p.Printf("  IRR (approx)            %.2f%%\n", study.IRR)
	_, _ = p.Printf("  NPV (approx)            $%.2f\n", study.NPV)

	fmt.Printf("\nTimeline\n")
	_, _ = p.Printf("  Development Period      %.0f months\n", study.DevelopmentPeriod)
	_, _ = p.Printf("  Sales Period            %.0f months\n", study.SalesPeriod)
	_, _ = p.Printf("  Total Duration          %.0f months\n", study.TotalProjectDuration)
}

// CsvFormat outputs the study as quoted key/value rows in comma-separated
// value format.
func CsvFormat(study feasibility.Study) {
	rows := [][2]string{
		{"projectName", study.ProjectName},
		{"location", study.Location},
		{"projectType", study.ProjectType},
		{"plotArea", fmt.Sprintf("%.2f", study.PlotArea)},
		{"builtUpArea", fmt.Sprintf("%.2f", study.BuiltUpArea)},
		{"numberOfUnits", fmt.Sprintf("%.0f", study.NumberOfUnits)},
		{"landCost", fmt.Sprintf("%.2f", study.LandCost)},
		{"constructionCost", fmt.Sprintf("%.2f", study.ConstructionCost)},
		{"professionalFees", fmt.Sprintf("%.2f", study.ProfessionalFees)},
		{"marketingCosts", fmt.Sprintf("%.2f", study.MarketingCosts)},
		{"contingency", fmt.Sprintf("%.2f", study.Contingency)},
		{"financingCosts", fmt.Sprintf("%.2f", study.FinancingCosts)},
		{"totalDevelopmentCost", fmt.Sprintf("%.2f", study.TotalDevelopmentCost)},
		{"averageSalePrice", fmt.Sprintf("%.2f", study.AverageSalePrice)},
		{"totalRevenue", fmt.Sprintf("%.2f", study.TotalRevenue)},
		{"totalOperatingExpenses", fmt.Sprintf("%.2f", study.TotalOperatingExpenses)},
		{"grossProfit", fmt.Sprintf("%.2f", study.GrossProfit)},
		{"grossProfitMargin", fmt.Sprintf("%.2f", study.GrossProfitMargin)},
		{"netProfit", fmt.Sprintf("%.2f", study.NetProfit)},
		{"netProfitMargin", fmt.Sprintf("%.2f", study.NetProfitMargin)},
		{"roi", fmt.Sprintf("%.2f", study.ROI)},
		{"breakEvenPoint", fmt.Sprintf("%.0f", study.BreakEvenPoint)},
		{"paybackPeriod", fmt.Sprintf("%.2f", study.PaybackPeriod)},
		{"irr", fmt.Sprintf("%.2f", study.IRR)},
		{"npv", fmt.Sprintf("%.2f", study.NPV)},
		{"developmentPeriod", fmt.Sprintf("%.0f", study.DevelopmentPeriod)},
		{"salesPeriod", fmt.Sprintf("%.0f", study.SalesPeriod)},
		{"totalProjectDuration", fmt.Sprintf("%.0f", study.TotalProjectDuration)},
	}
	fmt.Printf("\"field\",\"value\"\n")
	for _, row := range rows {
		fmt.Printf("\"%s\",\"%s\"\n", row[0], row[1])
	}
}
