package catalog

import (
	"testing"

	"SqueezeFM/model"
)

func taggedTrack(id int64, genre, mood []string) *model.Track {
	return &model.Track{ID: id, Genre: genre, Mood: mood}
}

func TestSimilarityScore_GenreDoubleMoodSingle(t *testing.T) {
	ref := taggedTrack(1, []string{"Rock", "Pop"}, []string{"Sad"})
	candidate := taggedTrack(2, []string{"Rock"}, []string{"Sad"})

	if got := SimilarityScore(ref, candidate); got != 3 {
		t.Errorf("score = %d, want 3 (2*1 genre + 1*1 mood)", got)
	}
}

func TestSimilarityScore_ZeroOverlap(t *testing.T) {
	ref := taggedTrack(1, []string{"Rock"}, []string{"Sad"})
	candidate := taggedTrack(2, []string{"Jazz"}, []string{"Happy"})

	if got := SimilarityScore(ref, candidate); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestSimilarityScore_CaseFoldsTags(t *testing.T) {
	ref := taggedTrack(1, []string{"rock"}, nil)
	candidate := taggedTrack(2, []string{" ROCK "}, nil)

	if got := SimilarityScore(ref, candidate); got != 2 {
		t.Errorf("score = %d, want 2", got)
	}
}

func TestSimilarityScore_MonotonicInIntersection(t *testing.T) {
	ref := taggedTrack(1, []string{"Rock", "Pop", "Funk"}, nil)

	one := SimilarityScore(ref, taggedTrack(2, []string{"Rock"}, nil))
	two := SimilarityScore(ref, taggedTrack(3, []string{"Rock", "Pop"}, nil))
	three := SimilarityScore(ref, taggedTrack(4, []string{"Rock", "Pop", "Funk"}, nil))

	if !(one < two && two < three) {
		t.Errorf("scores not increasing with intersection size: %d, %d, %d", one, two, three)
	}
}

func TestTopSimilar_RanksAndLimits(t *testing.T) {
	ref := taggedTrack(1, []string{"Rock", "Pop"}, []string{"Sad", "Dark"})
	pool := []*model.Track{
		taggedTrack(10, []string{"Jazz"}, []string{"Happy"}),          // 0
		taggedTrack(11, []string{"Rock"}, []string{"Sad"}),            // 3
		taggedTrack(12, []string{"Rock", "Pop"}, []string{"Sad"}),     // 5
		taggedTrack(13, []string{"Pop"}, nil),                         // 2
		taggedTrack(14, []string{"Rock", "Pop"}, []string{"Sad", "Dark"}), // 6
		taggedTrack(15, nil, []string{"Dark"}),                        // 1
	}

	got := TopSimilar(ref, pool, SimilarLimit)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	wantIDs := []int64{14, 12, 11, 13}
	wantScores := []int{6, 5, 3, 2}
	for i := range wantIDs {
		if got[i].Track.ID != wantIDs[i] || got[i].Score != wantScores[i] {
			t.Errorf("top[%d] = (%d, %d), want (%d, %d)",
				i, got[i].Track.ID, got[i].Score, wantIDs[i], wantScores[i])
		}
	}
}

func TestTopSimilar_TiesKeepPoolOrder(t *testing.T) {
	ref := taggedTrack(1, []string{"Rock"}, nil)
	pool := []*model.Track{
		taggedTrack(10, []string{"Rock"}, nil),
		taggedTrack(11, []string{"Rock"}, nil),
		taggedTrack(12, []string{"Rock"}, nil),
	}

	got := TopSimilar(ref, pool, 3)
	for i, want := range []int64{10, 11, 12} {
		if got[i].Track.ID != want {
			t.Fatalf("tie order = [%d %d %d], want [10 11 12]", got[0].Track.ID, got[1].Track.ID, got[2].Track.ID)
		}
	}
}

func TestTopSimilar_ZeroScoreCandidatesFillSparsePool(t *testing.T) {
	ref := taggedTrack(1, []string{"Rock"}, nil)
	pool := []*model.Track{
		taggedTrack(10, []string{"Jazz"}, nil),
		taggedTrack(11, []string{"Folk"}, nil),
	}

	got := TopSimilar(ref, pool, SimilarLimit)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (no minimum-score cutoff)", len(got))
	}
}

func TestTopSimilar_ExcludesReference(t *testing.T) {
	ref := taggedTrack(1, []string{"Rock"}, nil)
	pool := []*model.Track{ref, taggedTrack(2, []string{"Rock"}, nil)}

	got := TopSimilar(ref, pool, SimilarLimit)
	for _, s := range got {
		if s.Track.ID == ref.ID {
			t.Fatal("reference track recommended to itself")
		}
	}
}

func TestSeedSimilarFilter_FirstThreeTagsAndClearedState(t *testing.T) {
	ref := &model.Track{
		ID:    1,
		Genre: model.TagList{"Rock", "Pop", "Funk", "Disco"},
		Mood:  model.TagList{"Sad", "Dark"},
	}

	state := SeedSimilarFilter(ref)

	if len(state.Genres) != 3 {
		t.Fatalf("genres = %v, want first 3", state.Genres)
	}
	for i, want := range []string{"Rock", "Pop", "Funk"} {
		if state.Genres[i] != want {
			t.Errorf("genres[%d] = %q, want %q", i, state.Genres[i], want)
		}
	}
	if len(state.Moods) != 2 {
		t.Errorf("moods = %v, want both available tags", state.Moods)
	}
	if state.Search != "" || state.Tempo != TempoUnset || state.LoopOnly || state.StingerOnly ||
		len(state.Instruments) != 0 || len(state.Seasons) != 0 {
		t.Errorf("seeded state carries leftover filters: %+v", state)
	}
	if state.Page != 1 {
		t.Errorf("page = %d, want 1", state.Page)
	}
}
