// Package feasibility defines the study entity and the metrics engine that
// derives a complete financial summary from flat user-supplied inputs.
package feasibility

import "time"

// Known project types. The set is open; the data layer does not enforce it.
const (
	ProjectTypeResidential = "Residential"
	ProjectTypeCommercial  = "Commercial"
	ProjectTypeMixedUse    = "Mixed-Use"
	ProjectTypeIndustrial  = "Industrial"
)

// Study is the persisted feasibility record: the normalized inputs plus every
// derived metric, computed once at construction. Derived fields are never
// mutated independently of their inputs.
type Study struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProjectName string `json:"projectName"`
	Location    string `json:"location"`
	ProjectType string `json:"projectType"`
	Notes       string `json:"notes"`

	// Physical attributes; areas in sq ft, unit counts as integers-as-floats.
	PlotArea      float64 `json:"plotArea"`
	BuiltUpArea   float64 `json:"builtUpArea"`
	NumberOfUnits float64 `json:"numberOfUnits"`

	// Development costs
	LandCost             float64 `json:"landCost"`
	ConstructionCost     float64 `json:"constructionCost"`
	ProfessionalFees     float64 `json:"professionalFees"`
	MarketingCosts       float64 `json:"marketingCosts"`
	Contingency          float64 `json:"contingency"`
	FinancingCosts       float64 `json:"financingCosts"`
	TotalDevelopmentCost float64 `json:"totalDevelopmentCost"`

	// Revenue
	AverageSalePrice float64 `json:"averageSalePrice"`
	TotalRevenue     float64 `json:"totalRevenue"`

	// Operating expenses (annual)
	MaintenanceCosts       float64 `json:"maintenanceCosts"`
	ManagementFees         float64 `json:"managementFees"`
	Utilities              float64 `json:"utilities"`
	Insurance              float64 `json:"insurance"`
	PropertyTax            float64 `json:"propertyTax"`
	TotalOperatingExpenses float64 `json:"totalOperatingExpenses"`

	// Financial metrics
	GrossProfit       float64 `json:"grossProfit"`
	GrossProfitMargin float64 `json:"grossProfitMargin"` // percentage
	NetProfit         float64 `json:"netProfit"`
	NetProfitMargin   float64 `json:"netProfitMargin"` // percentage
	ROI               float64 `json:"roi"`             // percentage
	BreakEvenPoint    float64 `json:"breakEvenPoint"`  // units
	PaybackPeriod     float64 `json:"paybackPeriod"`   // years
	IRR               float64 `json:"irr"`             // percentage, approximate
	NPV               float64 `json:"npv"`             // approximate

	// Timeline, in months
	DevelopmentPeriod    float64 `json:"developmentPeriod"`
	SalesPeriod          float64 `json:"salesPeriod"`
	TotalProjectDuration float64 `json:"totalProjectDuration"`
}
