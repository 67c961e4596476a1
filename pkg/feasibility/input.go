package feasibility

// Input carries the raw user-entered form fields for one feasibility study.
// Numeric fields are free text; anything that fails to parse is treated as
// absent and contributes zero to every derived total.
type Input struct {
	ProjectName string `json:"projectName" yaml:"projectName"`
	Location    string `json:"location" yaml:"location"`
	ProjectType string `json:"projectType" yaml:"projectType"`
	Notes       string `json:"notes" yaml:"notes"`

	PlotArea      string `json:"plotArea" yaml:"plotArea"`
	BuiltUpArea   string `json:"builtUpArea" yaml:"builtUpArea"`
	NumberOfUnits string `json:"numberOfUnits" yaml:"numberOfUnits"`

	LandCost         string `json:"landCost" yaml:"landCost"`
	ConstructionCost string `json:"constructionCost" yaml:"constructionCost"`
	ProfessionalFees string `json:"professionalFees" yaml:"professionalFees"`
	MarketingCosts   string `json:"marketingCosts" yaml:"marketingCosts"`
	Contingency      string `json:"contingency" yaml:"contingency"`
	FinancingCosts   string `json:"financingCosts" yaml:"financingCosts"`

	AverageSalePrice string `json:"averageSalePrice" yaml:"averageSalePrice"`

	MaintenanceCosts string `json:"maintenanceCosts" yaml:"maintenanceCosts"`
	ManagementFees   string `json:"managementFees" yaml:"managementFees"`
	Utilities        string `json:"utilities" yaml:"utilities"`
	Insurance        string `json:"insurance" yaml:"insurance"`
	PropertyTax      string `json:"propertyTax" yaml:"propertyTax"`

	DevelopmentPeriod string `json:"developmentPeriod" yaml:"developmentPeriod"`
	SalesPeriod       string `json:"salesPeriod" yaml:"salesPeriod"`
}
