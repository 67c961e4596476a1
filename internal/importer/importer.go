// Package importer extracts a partial feasibility input from a previously
// exported workbook. Matching is deliberately heuristic: rows are scanned for
// a fixed vocabulary of case-insensitive label substrings and the adjacent
// cell is captured as text. Operating expenses, the timeline, and notes are
// never round-tripped and must be re-entered.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/propscope/feasibility/pkg/feasibility"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnreadable indicates the file could not be opened as a workbook.
	ErrUnreadable = errors.New("could not read workbook")

	// ErrNoData indicates a readable workbook with no recognizable rows.
	ErrNoData = errors.New("workbook contains no recognizable data")
)

// FromWorkbook scans the first sheet of the workbook read from r and returns
// a partial input with every recognized field populated as text. Values for
// numeric fields are normalized downstream by the engine's fallback-to-zero
// policy, exactly as hand-entered values are.
func FromWorkbook(r io.Reader) (feasibility.Input, error) {
	var in feasibility.Input

	f, err := excelize.OpenReader(r)
	if err != nil {
		return in, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return in, ErrNoData
	}

	// Raw values: currency cells in exported workbooks carry a number
	// format, and the rendered "$1,234" form would defeat re-parsing.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return in, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	matched := 0
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := strings.ToLower(row[0])
		value := row[1]
		if value == "" {
			continue
		}

		switch {
		case strings.Contains(key, "project name"):
			in.ProjectName = value
		case strings.Contains(key, "location"):
			in.Location = value
		case strings.Contains(key, "plot area"):
			in.PlotArea = value
		case strings.Contains(key, "built-up area"), strings.Contains(key, "built up area"):
			in.BuiltUpArea = value
		case strings.Contains(key, "number of units"):
			in.NumberOfUnits = value
		case strings.Contains(key, "project type"):
			in.ProjectType = value
		case strings.Contains(key, "land cost"):
			in.LandCost = value
		case strings.Contains(key, "construction cost"):
			in.ConstructionCost = value
		case strings.Contains(key, "professional fees"):
			in.ProfessionalFees = value
		case strings.Contains(key, "marketing costs"):
			in.MarketingCosts = value
		case strings.Contains(key, "contingency"):
			in.Contingency = value
		case strings.Contains(key, "financing costs"):
			in.FinancingCosts = value
		case strings.Contains(key, "average sale price"):
			in.AverageSalePrice = value
		default:
			continue
		}
		matched++
	}

	if matched == 0 {
		return feasibility.Input{}, ErrNoData
	}
	return in, nil
}
