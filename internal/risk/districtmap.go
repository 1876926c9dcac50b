package risk

import (
	"sort"

	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

// mapFeatureNames maps catalog spellings to the district names used by the
// boundary dataset the presentation layer colors.
var mapFeatureNames = map[string]string{
	"Kanchipuram": "Kancheepuram",
	"Tiruvallur":  "Thiruvallur",
	"Thoothukudi": "Thoothukkudi",
}

// MapEntry is one district's choropleth value.
type MapEntry struct {
	District    string  `json:"district"`
	MapName     string  `json:"map_name"`
	AverageRank float64 `json:"average_rank"`
}

// DistrictMap returns the untruncated average rank of every district in the
// reference table, sorted by district.
func (s *Service) DistrictMap() []MapEntry {
	all := s.table.All()
	out := make([]MapEntry, 0, len(all))
	for district, ranks := range all {
		name := district
		if alias, ok := mapFeatureNames[district]; ok {
			name = alias
		}
		out = append(out, MapEntry{District: district, MapName: name, AverageRank: scoring.AverageRank(ranks)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].District < out[j].District })
	return out
}
