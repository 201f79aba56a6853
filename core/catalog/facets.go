package catalog

import (
	"sort"

	"SqueezeFM/model"
)

// FacetCount is one entry of the facet menu.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// InstrumentFacets builds the instrument facet menu from the unfiltered
// snapshot: every distinct instrument tag with its frequency, most frequent
// first, ties alphabetical. The menu is computed once per snapshot load and
// does not change as filters are applied.
func InstrumentFacets(snapshot []*model.Track) []FacetCount {
	counts := make(map[string]int)
	display := make(map[string]string) // folded -> first-seen casing

	for _, t := range snapshot {
		for _, tag := range t.Instrument {
			folded := model.NormalizeTag(tag)
			if folded == "" {
				continue
			}
			if _, seen := display[folded]; !seen {
				display[folded] = tag
			}
			counts[folded]++
		}
	}

	out := make([]FacetCount, 0, len(counts))
	for folded, count := range counts {
		out = append(out, FacetCount{Value: display[folded], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return model.NormalizeTag(out[i].Value) < model.NormalizeTag(out[j].Value)
	})
	return out
}
