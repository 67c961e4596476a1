package feasibility

import (
	"math"
	"testing"
	"time"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func fixedTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-08-29T12:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

// referenceInput is the worked scenario: $450,000 total cost, 12 units at
// $50,000, no operating expenses, 12 + 6 month timeline.
func referenceInput() Input {
	return Input{
		ProjectName:       "Riverside Towers",
		Location:          "Austin, TX",
		ProjectType:       ProjectTypeResidential,
		LandCost:          "100000",
		ConstructionCost:  "300000",
		ProfessionalFees:  "20000",
		MarketingCosts:    "10000",
		Contingency:       "15000",
		FinancingCosts:    "5000",
		AverageSalePrice:  "50000",
		NumberOfUnits:     "12",
		DevelopmentPeriod: "12",
		SalesPeriod:       "6",
	}
}

func TestComputeReferenceScenario(t *testing.T) {
	now := fixedTime(t)
	study := Compute(referenceInput(), "test-id", now, now)

	if !almostEqual(study.TotalDevelopmentCost, 450000) {
		t.Errorf("TotalDevelopmentCost = %v, expected 450000", study.TotalDevelopmentCost)
	}
	if !almostEqual(study.TotalRevenue, 600000) {
		t.Errorf("TotalRevenue = %v, expected 600000", study.TotalRevenue)
	}
	if !almostEqual(study.GrossProfit, 150000) {
		t.Errorf("GrossProfit = %v, expected 150000", study.GrossProfit)
	}
	if !almostEqual(study.GrossProfitMargin, 25) {
		t.Errorf("GrossProfitMargin = %v, expected 25", study.GrossProfitMargin)
	}
	if !almostEqual(study.NetProfit, 150000) {
		t.Errorf("NetProfit = %v, expected 150000 (no operating expenses)", study.NetProfit)
	}
	if !almostEqual(study.ROI, 150000.0/450000.0*100) {
		t.Errorf("ROI = %v, expected 33.33...", study.ROI)
	}
	if study.BreakEvenPoint != 9 {
		t.Errorf("BreakEvenPoint = %v, expected 9", study.BreakEvenPoint)
	}
	// No operating expenses, so the payback approximation short-circuits.
	if study.PaybackPeriod != 0 {
		t.Errorf("PaybackPeriod = %v, expected 0", study.PaybackPeriod)
	}
	// 12-month development period: IRR equals ROI over one year.
	if !almostEqual(study.IRR, study.ROI) {
		t.Errorf("IRR = %v, expected equal to ROI %v", study.IRR, study.ROI)
	}
	expectedNPV := 150000/math.Pow(1.10, 1.5) - 450000
	if !almostEqual(study.NPV, expectedNPV) {
		t.Errorf("NPV = %v, expected %v", study.NPV, expectedNPV)
	}
	if !almostEqual(study.TotalProjectDuration, 18) {
		t.Errorf("TotalProjectDuration = %v, expected 18", study.TotalProjectDuration)
	}
}

func TestComputeZeroRevenue(t *testing.T) {
	now := fixedTime(t)
	in := Input{
		LandCost:         "200000",
		MaintenanceCosts: "5000",
		AverageSalePrice: "0",
		NumberOfUnits:    "10",
	}
	study := Compute(in, "test-id", now, now)

	if study.TotalRevenue != 0 {
		t.Errorf("TotalRevenue = %v, expected 0", study.TotalRevenue)
	}
	if study.GrossProfitMargin != 0 {
		t.Errorf("GrossProfitMargin = %v, expected 0 with zero revenue", study.GrossProfitMargin)
	}
	if study.NetProfitMargin != 0 {
		t.Errorf("NetProfitMargin = %v, expected 0 with zero revenue", study.NetProfitMargin)
	}
	if study.BreakEvenPoint != 0 {
		t.Errorf("BreakEvenPoint = %v, expected 0 with zero sale price", study.BreakEvenPoint)
	}
}

func TestComputeZeroDevelopmentCost(t *testing.T) {
	now := fixedTime(t)
	in := Input{
		AverageSalePrice: "1000",
		NumberOfUnits:    "5",
	}
	study := Compute(in, "test-id", now, now)

	if study.ROI != 0 {
		t.Errorf("ROI = %v, expected 0 with zero development cost", study.ROI)
	}
}

func TestComputeCostTotalIncludesNegatives(t *testing.T) {
	now := fixedTime(t)
	in := Input{
		LandCost:         "100000",
		ConstructionCost: "-25000",
		ProfessionalFees: "5000",
	}
	study := Compute(in, "test-id", now, now)

	if !almostEqual(study.TotalDevelopmentCost, 80000) {
		t.Errorf("TotalDevelopmentCost = %v, expected 80000 (negatives pass through)", study.TotalDevelopmentCost)
	}
}

func TestComputeNonNumericFieldsContributeZero(t *testing.T) {
	now := fixedTime(t)
	in := referenceInput()
	in.Contingency = "TBD"
	in.FinancingCosts = ""
	study := Compute(in, "test-id", now, now)

	if !almostEqual(study.TotalDevelopmentCost, 430000) {
		t.Errorf("TotalDevelopmentCost = %v, expected 430000 with blank/non-numeric fields", study.TotalDevelopmentCost)
	}
}

func TestComputePaybackPeriod(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected float64
	}{
		{
			name: "Positive profit and expenses use the entered timeline",
			input: Input{
				LandCost:          "100000",
				AverageSalePrice:  "50000",
				NumberOfUnits:     "10",
				MaintenanceCosts:  "10000",
				DevelopmentPeriod: "12",
				SalesPeriod:       "8",
			},
			// 100000 / (500000 / 20)
			expected: 4,
		},
		{
			name: "Missing timeline defaults to a one-year denominator",
			input: Input{
				LandCost:         "100000",
				AverageSalePrice: "100000",
				NumberOfUnits:    "10",
				MaintenanceCosts: "50000",
			},
			// 100000 / (1000000 / 12)
			expected: 1.2,
		},
		{
			name: "No operating expenses yields zero",
			input: Input{
				LandCost:         "100000",
				AverageSalePrice: "50000",
				NumberOfUnits:    "10",
			},
			expected: 0,
		},
		{
			name: "Negative net profit yields zero",
			input: Input{
				LandCost:         "900000",
				AverageSalePrice: "50000",
				NumberOfUnits:    "10",
				MaintenanceCosts: "10000",
			},
			expected: 0,
		},
	}

	now := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			study := Compute(tt.input, "test-id", now, now)
			if !almostEqual(study.PaybackPeriod, tt.expected) {
				t.Errorf("PaybackPeriod = %v, expected %v", study.PaybackPeriod, tt.expected)
			}
		})
	}
}

func TestComputeIRRDivisorDefaults(t *testing.T) {
	now := fixedTime(t)

	// Zero development period: IRR falls back to ROI over one year.
	in := Input{
		LandCost:         "100000",
		AverageSalePrice: "50000",
		NumberOfUnits:    "10",
	}
	study := Compute(in, "test-id", now, now)
	if !almostEqual(study.IRR, study.ROI) {
		t.Errorf("IRR = %v, expected ROI %v when development period is zero", study.IRR, study.ROI)
	}

	// 24-month development period: IRR is ROI halved.
	in.DevelopmentPeriod = "24"
	study = Compute(in, "test-id", now, now)
	if !almostEqual(study.IRR, study.ROI/2) {
		t.Errorf("IRR = %v, expected ROI/2 = %v", study.IRR, study.ROI/2)
	}
}

func TestComputeNPVDefaultsToOneYear(t *testing.T) {
	now := fixedTime(t)
	in := Input{
		LandCost:         "100000",
		AverageSalePrice: "50000",
		NumberOfUnits:    "10",
	}
	study := Compute(in, "test-id", now, now)

	expected := study.NetProfit/1.10 - 100000
	if !almostEqual(study.NPV, expected) {
		t.Errorf("NPV = %v, expected %v with the one-year default", study.NPV, expected)
	}
}

func TestComputeIsTotalOverGarbageInput(t *testing.T) {
	now := fixedTime(t)
	in := Input{
		ProjectName:       "",
		PlotArea:          "not a number",
		NumberOfUnits:     "many",
		LandCost:          "???",
		AverageSalePrice:  "-1",
		DevelopmentPeriod: "soon",
	}
	study := Compute(in, "test-id", now, now)

	// Everything unparsable contributes zero; nothing panics or errors.
	if study.TotalDevelopmentCost != 0 || study.TotalRevenue != 0 {
		t.Errorf("expected zero totals, got cost=%v revenue=%v",
			study.TotalDevelopmentCost, study.TotalRevenue)
	}
	if study.GrossProfitMargin != 0 || study.ROI != 0 || study.BreakEvenPoint != 0 {
		t.Errorf("expected zero-guarded metrics, got margin=%v roi=%v breakEven=%v",
			study.GrossProfitMargin, study.ROI, study.BreakEvenPoint)
	}
}

func TestNewStudyAssignsIdentity(t *testing.T) {
	first := NewStudy(referenceInput())
	second := NewStudy(referenceInput())

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected non-empty study ids")
	}
	if first.ID == second.ID {
		t.Errorf("expected unique ids, both were %s", first.ID)
	}
	if first.CreatedAt.IsZero() || !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt at construction, got %v / %v",
			first.CreatedAt, first.UpdatedAt)
	}
}
