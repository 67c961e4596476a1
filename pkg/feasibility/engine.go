package feasibility

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/propscope/feasibility/pkg/constants"
	"github.com/propscope/feasibility/pkg/numeric"
)

// NewStudy runs the metrics engine over an input, assigning a fresh identity
// and a single timestamp for both createdAt and updatedAt.
func NewStudy(in Input) Study {
	now := time.Now().UTC()
	return Compute(in, uuid.NewString(), now, now)
}

// Compute derives the full study record from an input. It is total over its
// input domain: every numeric field is normalized with the fallback-to-zero
// policy and every ratio uses a zero-guarded divisor, so no combination of
// inputs can fail. Identity and timestamps are supplied by the caller.
//
// The payback, IRR, and NPV figures are closed-form approximations, not
// iterative cash-flow solvers; exports assume these exact values.
func Compute(in Input, id string, createdAt, updatedAt time.Time) Study {
	plotArea := numeric.Amount(in.PlotArea)
	builtUpArea := numeric.Amount(in.BuiltUpArea)
	numberOfUnits := numeric.Amount(in.NumberOfUnits)

	landCost := numeric.Amount(in.LandCost)
	constructionCost := numeric.Amount(in.ConstructionCost)
	professionalFees := numeric.Amount(in.ProfessionalFees)
	marketingCosts := numeric.Amount(in.MarketingCosts)
	contingency := numeric.Amount(in.Contingency)
	financingCosts := numeric.Amount(in.FinancingCosts)

	averageSalePrice := numeric.Amount(in.AverageSalePrice)

	maintenanceCosts := numeric.Amount(in.MaintenanceCosts)
	managementFees := numeric.Amount(in.ManagementFees)
	utilities := numeric.Amount(in.Utilities)
	insurance := numeric.Amount(in.Insurance)
	propertyTax := numeric.Amount(in.PropertyTax)

	developmentPeriod := numeric.Amount(in.DevelopmentPeriod)
	salesPeriod := numeric.Amount(in.SalesPeriod)

	totalDevelopmentCost := landCost + constructionCost + professionalFees +
		marketingCosts + contingency + financingCosts

	totalRevenue := averageSalePrice * numberOfUnits

	totalOperatingExpenses := maintenanceCosts + managementFees + utilities +
		insurance + propertyTax

	grossProfit := totalRevenue - totalDevelopmentCost
	grossProfitMargin := 0.0
	if totalRevenue > 0 {
		grossProfitMargin = grossProfit / totalRevenue * constants.PercentageMultiplier
	}

	netProfit := grossProfit - totalOperatingExpenses
	netProfitMargin := 0.0
	if totalRevenue > 0 {
		netProfitMargin = netProfit / totalRevenue * constants.PercentageMultiplier
	}

	roi := 0.0
	if totalDevelopmentCost > 0 {
		roi = netProfit / totalDevelopmentCost * constants.PercentageMultiplier
	}

	breakEvenPoint := 0.0
	if averageSalePrice > 0 {
		breakEvenPoint = math.Ceil(totalDevelopmentCost / averageSalePrice)
	}

	// Simplified payback: development cost over average revenue per month,
	// with a one-year denominator when no timeline was entered.
	paybackPeriod := 0.0
	if netProfit > 0 && totalOperatingExpenses > 0 {
		effectivePeriod := developmentPeriod + salesPeriod
		if effectivePeriod == 0 {
			effectivePeriod = constants.DefaultEffectivePeriodMonths
		}
		paybackPeriod = totalDevelopmentCost / (totalRevenue / effectivePeriod)
	}

	// Approximate IRR: ROI over the development period in years, with the
	// divisor defaulting to 1 when the period is zero.
	developmentYears := developmentPeriod / constants.MonthsPerYear
	if developmentYears == 0 {
		developmentYears = 1
	}
	irr := roi / developmentYears

	// Approximate NPV at a fixed 10% discount rate.
	years := (developmentPeriod + salesPeriod) / constants.MonthsPerYear
	if years == 0 {
		years = 1
	}
	npv := netProfit/math.Pow(1+constants.DiscountRate, years) - totalDevelopmentCost

	return Study{
		ID:        id,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,

		ProjectName: in.ProjectName,
		Location:    in.Location,
		ProjectType: in.ProjectType,
		Notes:       in.Notes,

		PlotArea:      plotArea,
		BuiltUpArea:   builtUpArea,
		NumberOfUnits: numberOfUnits,

		LandCost:             landCost,
		ConstructionCost:     constructionCost,
		ProfessionalFees:     professionalFees,
		MarketingCosts:       marketingCosts,
		Contingency:          contingency,
		FinancingCosts:       financingCosts,
		TotalDevelopmentCost: totalDevelopmentCost,

		AverageSalePrice: averageSalePrice,
		TotalRevenue:     totalRevenue,

		MaintenanceCosts:       maintenanceCosts,
		ManagementFees:         managementFees,
		Utilities:              utilities,
		Insurance:              insurance,
		PropertyTax:            propertyTax,
		TotalOperatingExpenses: totalOperatingExpenses,

		GrossProfit:       grossProfit,
		GrossProfitMargin: grossProfitMargin,
		NetProfit:         netProfit,
		NetProfitMargin:   netProfitMargin,
		ROI:               roi,
		BreakEvenPoint:    breakEvenPoint,
		PaybackPeriod:     paybackPeriod,
		IRR:               irr,
		NPV:               npv,

		DevelopmentPeriod:    developmentPeriod,
		SalesPeriod:          salesPeriod,
		TotalProjectDuration: developmentPeriod + salesPeriod,
	}
}
