package ruleset

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/asrs-advisor/internal/model"
)

// xlsxColumns is the expected column order of a rule spreadsheet. The
// first row is treated as a header and skipped.
var xlsxColumns = []string{
	"id", "category", "title", "system_types", "commodities", "arrangement",
	"table_number", "figure_number", "sprinkler_spec", "spacing_ft",
	"flow_gpm", "pressure_psi", "max_height_ft",
}

// ReadXLSX parses rule records from the first sheet of an XLSX workbook.
// Datasheet tables are distributed as spreadsheets; this is the ingest
// path for `dataset import`.
func ReadXLSX(path string) ([]model.RuleRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ruleset: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("ruleset: workbook has no sheets")
	}
	sheet := f.Sheets[0]

	var records []model.RuleRecord
	for i, row := range sheet.Rows {
		cells := rowToStrings(row)
		if i == 0 {
			// Header row; tolerate exact-match headers only.
			continue
		}
		if isEmptyRow(cells) {
			continue
		}
		rec, err := recordFromRow(cells)
		if err != nil {
			return nil, eris.Wrapf(err, "ruleset: row %d", i+1)
		}
		records = append(records, rec)
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

func recordFromRow(cells []string) (model.RuleRecord, error) {
	// Pad short rows so optional trailing columns can be omitted.
	for len(cells) < len(xlsxColumns) {
		cells = append(cells, "")
	}

	rec := model.RuleRecord{
		ID:            strings.TrimSpace(cells[0]),
		Category:      model.RuleCategory(strings.TrimSpace(cells[1])),
		Title:         strings.TrimSpace(cells[2]),
		SystemTypes:   splitSystemTypes(cells[3]),
		Commodities:   strings.TrimSpace(cells[4]),
		Arrangement:   strings.TrimSpace(cells[5]),
		TableNumber:   strings.TrimSpace(cells[6]),
		FigureNumber:  strings.TrimSpace(cells[7]),
		SprinklerSpec: strings.TrimSpace(cells[8]),
		SpacingFt:     strings.TrimSpace(cells[9]),
	}

	var err error
	if rec.FlowGPM, err = parseFloatCell(cells[10]); err != nil {
		return rec, eris.Wrap(err, "flow_gpm")
	}
	if rec.PressurePSI, err = parseFloatCell(cells[11]); err != nil {
		return rec, eris.Wrap(err, "pressure_psi")
	}
	if rec.MaxHeightFt, err = parseFloatCell(cells[12]); err != nil {
		return rec, eris.Wrap(err, "max_height_ft")
	}
	return rec, nil
}

func parseFloatCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func rowToStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		out[i] = cell.String()
	}
	return out
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
