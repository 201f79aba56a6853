package catalog

import (
	"math/rand"
	"testing"

	"SqueezeFM/model"
)

func intPtr(v int) *int { return &v }

func track(id int64, title string) *model.Track {
	return &model.Track{ID: id, Title: title}
}

func trackIDs(tracks []*model.Track) []int64 {
	ids := make([]int64, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

func applyAll(snapshot []*model.Track, state FilterState) Result {
	// Large page size so tests see the whole filtered sequence at once.
	return Apply(snapshot, state, 1000, rand.New(rand.NewSource(1)))
}

func TestApply_EmptyStateIsNoFilter(t *testing.T) {
	snapshot := []*model.Track{track(1, "a"), track(2, "b"), track(3, "c")}

	res := applyAll(snapshot, FilterState{Sort: SortNewest})

	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
}

func TestApply_EmptySortReadsAsRelevance(t *testing.T) {
	snapshot := []*model.Track{track(1, "a"), track(2, "b"), track(3, "c"), track(4, "d"), track(5, "e")}

	zero := Apply(snapshot, FilterState{}, 1000, rand.New(rand.NewSource(7)))
	relevance := Apply(snapshot, FilterState{Sort: SortRelevance}, 1000, rand.New(rand.NewSource(7)))

	gotZero, gotRelevance := trackIDs(zero.Tracks), trackIDs(relevance.Tracks)
	for i := range gotZero {
		if gotZero[i] != gotRelevance[i] {
			t.Fatalf("zero-value sort order %v differs from relevance order %v", gotZero, gotRelevance)
		}
	}
}

func TestApply_NewestSortYearDescendingMissingAsZero(t *testing.T) {
	t1 := track(1, "first")
	t1.ReleaseYear = intPtr(2020)
	t2 := track(2, "second") // no year
	t3 := track(3, "third")
	t3.ReleaseYear = intPtr(2023)

	res := applyAll([]*model.Track{t1, t2, t3}, FilterState{Sort: SortNewest})

	got := trackIDs(res.Tracks)
	want := []int64{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestApply_NewestSortStableOnTies(t *testing.T) {
	tracks := []*model.Track{track(1, "a"), track(2, "b"), track(3, "c")}
	for _, tr := range tracks {
		tr.ReleaseYear = intPtr(2021)
	}

	res := applyAll(tracks, FilterState{Sort: SortNewest})

	got := trackIDs(res.Tracks)
	for i, want := range []int64{1, 2, 3} {
		if got[i] != want {
			t.Fatalf("tie order = %v, want [1 2 3]", got)
		}
	}
}

func TestApply_RelevanceShufflePreservesMembership(t *testing.T) {
	snapshot := make([]*model.Track, 20)
	for i := range snapshot {
		snapshot[i] = track(int64(i+1), "t")
	}

	res := applyAll(snapshot, FilterState{Sort: SortRelevance})

	if res.Total != 20 {
		t.Fatalf("Total = %d, want 20", res.Total)
	}
	seen := make(map[int64]int)
	for _, tr := range res.Tracks {
		seen[tr.ID]++
	}
	for id := int64(1); id <= 20; id++ {
		if seen[id] != 1 {
			t.Errorf("track %d appears %d times, want exactly once", id, seen[id])
		}
	}
}

func TestApply_ShuffleDoesNotMutateSnapshot(t *testing.T) {
	snapshot := make([]*model.Track, 50)
	for i := range snapshot {
		snapshot[i] = track(int64(i+1), "t")
	}

	applyAll(snapshot, FilterState{Sort: SortRelevance})

	for i, tr := range snapshot {
		if tr.ID != int64(i+1) {
			t.Fatalf("snapshot mutated at %d: got ID %d", i, tr.ID)
		}
	}
}

func TestApply_SearchSubstringOrSemantics(t *testing.T) {
	t1 := track(1, "Summer Breeze")
	t2 := track(2, "Winter Storm")
	t2.Artist = "The Breeze Collective"
	t3 := track(3, "Autumn Rain")

	res := applyAll([]*model.Track{t1, t2, t3}, FilterState{Search: "breeze snowfall", Sort: SortNewest})

	got := trackIDs(res.Tracks)
	if len(got) != 2 {
		t.Fatalf("matches = %v, want tracks 1 and 2", got)
	}
}

func TestApply_SearchMatchesTagsAndCredits(t *testing.T) {
	t1 := track(1, "Nocturne")
	t1.Genre = model.TagList{"Jazz"}
	t2 := track(2, "Daybreak")
	t2.Credits = model.CreditList{{Name: "Ada Keys", Role: "Composer"}}
	t3 := track(3, "Plain")

	res := applyAll([]*model.Track{t1, t2, t3}, FilterState{Search: "jazz", Sort: SortNewest})
	if len(res.Tracks) != 1 || res.Tracks[0].ID != 1 {
		t.Errorf("genre search = %v, want [1]", trackIDs(res.Tracks))
	}

	res = applyAll([]*model.Track{t1, t2, t3}, FilterState{Search: "keys", Sort: SortNewest})
	if len(res.Tracks) != 1 || res.Tracks[0].ID != 2 {
		t.Errorf("credits search = %v, want [2]", trackIDs(res.Tracks))
	}
}

func TestApply_RelevanceRanksTitleAffinity(t *testing.T) {
	contains := track(1, "Deep Rain Forest")
	exact := track(2, "Rain")
	prefix := track(3, "Rain Dance")
	tagOnly := track(4, "Cloudy")
	tagOnly.Mood = model.TagList{"rain"}

	res := applyAll([]*model.Track{contains, exact, prefix, tagOnly},
		FilterState{Search: "rain", Sort: SortRelevance})

	got := trackIDs(res.Tracks)
	want := []int64{2, 3, 1, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("relevance order = %v, want %v", got, want)
		}
	}
}

func TestApply_FacetFiltersOrWithinAndAcross(t *testing.T) {
	t1 := track(1, "a")
	t1.Genre = model.TagList{"Rock", "Pop"}
	t1.Mood = model.TagList{"Happy"}
	t2 := track(2, "b")
	t2.Genre = model.TagList{"Rock"}
	t2.Mood = model.TagList{"Sad"}
	t3 := track(3, "c")
	t3.Genre = model.TagList{"Electronic"}
	t3.Mood = model.TagList{"Sad"}

	// OR within genre facet.
	res := applyAll([]*model.Track{t1, t2, t3}, FilterState{Genres: []string{"Rock", "Electronic"}, Sort: SortNewest})
	if len(res.Tracks) != 3 {
		t.Errorf("OR within facet: got %d tracks, want 3", len(res.Tracks))
	}

	// AND across facets: t1 is tagged Rock but not Sad, so it drops out.
	res = applyAll([]*model.Track{t1, t2, t3}, FilterState{Genres: []string{"Rock"}, Moods: []string{"Sad"}, Sort: SortNewest})
	if len(res.Tracks) != 1 || res.Tracks[0].ID != 2 {
		t.Errorf("AND across facets = %v, want [2]", trackIDs(res.Tracks))
	}
}

func TestApply_FacetMatchingCaseFolds(t *testing.T) {
	t1 := track(1, "a")
	t1.Genre = model.TagList{"  Rock "}

	res := applyAll([]*model.Track{t1}, FilterState{Genres: []string{"rock"}, Sort: SortNewest})
	if len(res.Tracks) != 1 {
		t.Errorf("case-folded facet match failed")
	}
}

func TestApply_NullFacetNeverMatches(t *testing.T) {
	t1 := track(1, "a") // no genre at all

	res := applyAll([]*model.Track{t1}, FilterState{Genres: []string{"Rock"}, Sort: SortNewest})
	if len(res.Tracks) != 0 {
		t.Errorf("track with nil facet matched a non-empty facet filter")
	}
}

func TestMatchesTempo_BucketBoundaries(t *testing.T) {
	tests := []struct {
		bpm    int
		bucket TempoBucket
		want   bool
	}{
		{70, TempoSlow, true},
		{71, TempoSlow, false},
		{71, TempoMedium, true},
		{120, TempoMedium, true},
		{121, TempoMedium, false},
		{121, TempoFast, true},
		{120, TempoFast, false},
	}
	for _, tt := range tests {
		if got := MatchesTempo(intPtr(tt.bpm), tt.bucket); got != tt.want {
			t.Errorf("MatchesTempo(%d, %s) = %v, want %v", tt.bpm, tt.bucket, got, tt.want)
		}
	}
}

func TestMatchesTempo_NilBPMNeverMatches(t *testing.T) {
	for _, bucket := range []TempoBucket{TempoSlow, TempoMedium, TempoFast} {
		if MatchesTempo(nil, bucket) {
			t.Errorf("nil bpm matched bucket %s", bucket)
		}
	}
}

func TestApply_EditCutToggles(t *testing.T) {
	t1 := track(1, "a")
	t1.EditCuts = model.TagList{"Loop", "30s Edit"}
	t2 := track(2, "b")
	t2.EditCuts = model.TagList{"Stinger"}
	t3 := track(3, "c")
	t3.EditCuts = model.TagList{"Seamless Loop", "Stinger Cut"}

	res := applyAll([]*model.Track{t1, t2, t3}, FilterState{LoopOnly: true, Sort: SortNewest})
	if len(res.Tracks) != 2 {
		t.Errorf("loopOnly = %v, want tracks 1 and 3", trackIDs(res.Tracks))
	}

	res = applyAll([]*model.Track{t1, t2, t3}, FilterState{StingerOnly: true, Sort: SortNewest})
	if len(res.Tracks) != 2 {
		t.Errorf("stingerOnly = %v, want tracks 2 and 3", trackIDs(res.Tracks))
	}

	// Both toggles AND together.
	res = applyAll([]*model.Track{t1, t2, t3}, FilterState{LoopOnly: true, StingerOnly: true, Sort: SortNewest})
	if len(res.Tracks) != 1 || res.Tracks[0].ID != 3 {
		t.Errorf("both toggles = %v, want [3]", trackIDs(res.Tracks))
	}
}

func TestApply_ResultIsSubsetWithoutDuplicates(t *testing.T) {
	snapshot := make([]*model.Track, 40)
	for i := range snapshot {
		tr := track(int64(i+1), "t")
		if i%2 == 0 {
			tr.Genre = model.TagList{"Rock"}
		}
		if i%3 == 0 {
			tr.BPM = intPtr(80)
		}
		snapshot[i] = tr
	}

	res := applyAll(snapshot, FilterState{Genres: []string{"Rock"}, Tempo: TempoMedium, Sort: SortRelevance})

	seen := make(map[int64]bool)
	for _, tr := range res.Tracks {
		if seen[tr.ID] {
			t.Fatalf("track %d appears twice", tr.ID)
		}
		seen[tr.ID] = true
		if !tr.Genre.Intersects([]string{"Rock"}) {
			t.Errorf("track %d fails genre predicate", tr.ID)
		}
		if !MatchesTempo(tr.BPM, TempoMedium) {
			t.Errorf("track %d fails tempo predicate", tr.ID)
		}
	}
}

func TestApply_PaginationConcatenationReproducesSequence(t *testing.T) {
	snapshot := make([]*model.Track, 60)
	for i := range snapshot {
		tr := track(int64(i+1), "t")
		tr.ReleaseYear = intPtr(2000 + i)
		snapshot[i] = tr
	}

	var concat []int64
	state := FilterState{Sort: SortNewest}
	for page := 1; ; page++ {
		state.Page = page
		res := Apply(snapshot, state, 25, nil)
		concat = append(concat, trackIDs(res.Tracks)...)
		if page >= res.TotalPages {
			break
		}
	}

	if len(concat) != 60 {
		t.Fatalf("concatenated length = %d, want 60", len(concat))
	}
	// Newest sort: IDs descend from 60 to 1.
	for i, id := range concat {
		if id != int64(60-i) {
			t.Fatalf("concat[%d] = %d, want %d", i, id, 60-i)
		}
	}
}
