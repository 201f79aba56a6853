// Package catalog implements the storefront's two pure pipelines: the library
// filter/sort/paginate pipeline and the track-detail similarity scorer. Both
// are functions of (snapshot, parameters) with no hidden state; HTTP handlers
// only parse parameters and serialize results.
package catalog

import (
	"math/rand"
	"sort"
	"strings"

	"SqueezeFM/model"
)

// SortMode selects the base ordering of the library view.
type SortMode string

const (
	// SortRelevance shuffles the catalog when no search term is active
	// (a discovery shuffle, re-rolled per request) and ranks search
	// matches by title affinity otherwise.
	SortRelevance SortMode = "relevance"
	// SortNewest orders by release year descending, missing year last.
	SortNewest SortMode = "newest"
)

// TempoBucket is the exclusive BPM bucket filter.
type TempoBucket string

const (
	TempoUnset  TempoBucket = ""
	TempoSlow   TempoBucket = "slow"   // bpm <= 70
	TempoMedium TempoBucket = "medium" // 71-120
	TempoFast   TempoBucket = "fast"   // > 120
)

// MatchesTempo reports whether a bpm value falls in the bucket.
// A nil bpm never matches any bucket.
func MatchesTempo(bpm *int, bucket TempoBucket) bool {
	if bpm == nil {
		return false
	}
	switch bucket {
	case TempoSlow:
		return *bpm <= 70
	case TempoMedium:
		return *bpm >= 71 && *bpm <= 120
	case TempoFast:
		return *bpm > 120
	default:
		return false
	}
}

// FilterState is the full filter/sort state of the library view. The zero
// value is "clear all": no term, no facet selections, no tempo bucket, both
// toggles off, relevance sort (Apply reads an empty Sort as relevance),
// page 1.
type FilterState struct {
	Search      string
	Genres      []string
	Moods       []string
	Instruments []string
	Seasons     []string
	Tempo       TempoBucket
	LoopOnly    bool
	StingerOnly bool
	Sort        SortMode
	Page        int
}

// Result is one windowed page of the filtered, ordered catalog.
type Result struct {
	Tracks      []*model.Track `json:"tracks"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	PageButtons []int          `json:"pageButtons"`
}

// Apply runs the full pipeline over a snapshot: base ordering, text search
// with relevance re-rank, facet filters, tempo bucket, edit-cut toggles and
// pagination. The snapshot itself is never mutated; ordering operates on a
// working copy. rng drives the relevance shuffle and may be nil for a
// time-seeded source.
func Apply(snapshot []*model.Track, state FilterState, pageSize int, rng *rand.Rand) Result {
	working := make([]*model.Track, len(snapshot))
	copy(working, snapshot)

	if state.Sort == "" {
		state.Sort = SortRelevance
	}

	term := strings.ToLower(strings.TrimSpace(state.Search))

	switch {
	case state.Sort == SortNewest:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].Year() > working[j].Year()
		})
	case state.Sort == SortRelevance && term == "":
		shuffle(working, rng)
	}

	if term != "" {
		working = searchTracks(working, term)
		if state.Sort == SortRelevance {
			rankByTitleAffinity(working, term)
		}
	}

	working = filterTracks(working, func(t *model.Track) bool {
		if len(state.Genres) > 0 && !t.Genre.Intersects(state.Genres) {
			return false
		}
		if len(state.Moods) > 0 && !t.Mood.Intersects(state.Moods) {
			return false
		}
		if len(state.Instruments) > 0 && !t.Instrument.Intersects(state.Instruments) {
			return false
		}
		if len(state.Seasons) > 0 && !t.Season.Intersects(state.Seasons) {
			return false
		}
		return true
	})

	if state.Tempo != TempoUnset {
		working = filterTracks(working, func(t *model.Track) bool {
			return MatchesTempo(t.BPM, state.Tempo)
		})
	}

	if state.LoopOnly {
		working = filterTracks(working, func(t *model.Track) bool {
			return t.EditCuts.ContainsSubstring("loop")
		})
	}
	if state.StingerOnly {
		working = filterTracks(working, func(t *model.Track) bool {
			return t.EditCuts.ContainsSubstring("stinger")
		})
	}

	window, page, totalPages := Paginate(working, state.Page, pageSize)

	return Result{
		Tracks:      window,
		Total:       len(working),
		Page:        page,
		TotalPages:  totalPages,
		PageButtons: PageButtons(page, totalPages),
	}
}

// searchTracks keeps tracks whose haystack contains any whitespace-split term
// (OR semantics, substring match, case-insensitive).
func searchTracks(tracks []*model.Track, term string) []*model.Track {
	terms := strings.Fields(term)
	return filterTracks(tracks, func(t *model.Track) bool {
		haystack := t.SearchHaystack()
		for _, needle := range terms {
			if strings.Contains(haystack, needle) {
				return true
			}
		}
		return false
	})
}

// rankByTitleAffinity re-ranks matched tracks in place: exact title match
// first, then title-starts-with, then title-contains, then the rest, keeping
// prior relative order within each band.
func rankByTitleAffinity(tracks []*model.Track, term string) {
	band := func(t *model.Track) int {
		title := strings.ToLower(t.Title)
		switch {
		case title == term:
			return 0
		case strings.HasPrefix(title, term):
			return 1
		case strings.Contains(title, term):
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(tracks, func(i, j int) bool {
		return band(tracks[i]) < band(tracks[j])
	})
}

func filterTracks(tracks []*model.Track, keep func(*model.Track) bool) []*model.Track {
	out := tracks[:0:0]
	for _, t := range tracks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// shuffle applies a uniform Fisher-Yates permutation.
func shuffle(tracks []*model.Track, rng *rand.Rand) {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := len(tracks) - 1; i > 0; i-- {
		j := intn(i + 1)
		tracks[i], tracks[j] = tracks[j], tracks[i]
	}
}
