package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

const districtColumn = "district"

// legacyColumns are accepted in place of the canonical <scheme>_rank header.
var legacyColumns = map[string]scheme.ID{
	"kalaignar_magalir_urimai_rank": scheme.MagalirUrimai,
}

// ParseCSV reads a reference table: one row per district, a district column
// and one <scheme>_rank column per scheme. Bad cells and rows are skipped and
// reported as warnings; only an unreadable header is an error.
func ParseCSV(r io.Reader) (*Table, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read header: %w", err)
	}
	districtIdx, columns, err := mapHeader(header)
	if err != nil {
		return nil, nil, err
	}

	rows := map[string]scheme.Ranks{}
	seen := map[string]int{}
	var warnings []string
	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		name := cell(record, districtIdx)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: missing district", line))
			continue
		}
		ranks := scheme.Ranks{}
		for _, col := range columns {
			id := col.id
			raw := cell(record, col.idx)
			if raw == "" {
				continue
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: invalid %s %q", line, id.RankColumn(), raw))
				continue
			}
			if !scheme.ValidRank(v) {
				warnings = append(warnings, fmt.Sprintf("line %d: %s %d outside [%d,%d]", line, id.RankColumn(), v, scheme.MinRank, scheme.MaxRank))
				continue
			}
			ranks[id] = v
		}
		key := normalize(name)
		if prev, dup := seen[key]; dup {
			warnings = append(warnings, fmt.Sprintf("line %d: duplicate district %q (first on line %d), keeping the later row", line, name, prev))
			for existing := range rows {
				if normalize(existing) == key {
					delete(rows, existing)
				}
			}
		}
		seen[key] = line
		rows[name] = ranks
	}
	return New(rows), warnings, nil
}

type rankColumn struct {
	idx int
	id  scheme.ID
}

// mapHeader returns the district column index and the rank columns in
// header order.
func mapHeader(header []string) (int, []rankColumn, error) {
	districtIdx := -1
	var columns []rankColumn
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == districtColumn {
			districtIdx = i
			continue
		}
		if id, ok := legacyColumns[key]; ok {
			columns = append(columns, rankColumn{idx: i, id: id})
			continue
		}
		for _, id := range scheme.All {
			if key == id.RankColumn() {
				columns = append(columns, rankColumn{idx: i, id: id})
			}
		}
	}
	if districtIdx < 0 {
		return 0, nil, fmt.Errorf("missing required header: %s", districtColumn)
	}
	return districtIdx, columns, nil
}

func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
