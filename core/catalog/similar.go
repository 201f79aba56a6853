package catalog

import (
	"sort"

	"SqueezeFM/model"
)

// SimilarLimit is how many recommendations the track detail view shows.
const SimilarLimit = 4

// ScoredTrack is a (track, score) recommendation candidate.
type ScoredTrack struct {
	Track *model.Track `json:"track"`
	Score int          `json:"score"`
}

// SimilarityScore computes the additive tag-overlap score between a reference
// track and a candidate: shared genre tags count double, shared mood tags
// count once. Tags compare as exact post-normalization strings.
func SimilarityScore(ref, candidate *model.Track) int {
	return 2*ref.Genre.Overlap(candidate.Genre) + ref.Mood.Overlap(candidate.Mood)
}

// TopSimilar ranks a candidate pool against the reference and returns the top
// n, ties broken by original pool order. Zero-score candidates stay eligible;
// there is no minimum-score cutoff.
func TopSimilar(ref *model.Track, pool []*model.Track, n int) []ScoredTrack {
	scored := make([]ScoredTrack, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == ref.ID {
			continue
		}
		scored = append(scored, ScoredTrack{Track: candidate, Score: SimilarityScore(ref, candidate)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if n > len(scored) {
		n = len(scored)
	}
	return scored[:n]
}

// SeedSimilarFilter builds the "find similar" filter state: all active
// filters cleared, genre and mood selections seeded from the reference
// track's first three tags of each. This is facet seeding, not ranking; the
// similarity score plays no part in it.
func SeedSimilarFilter(ref *model.Track) FilterState {
	return FilterState{
		Genres: ref.Genre.First(3),
		Moods:  ref.Mood.First(3),
		Sort:   SortRelevance,
		Page:   1,
	}
}
