package server

import (
	"net/http"
	"strconv"

	"SqueezeFM/cache"
	"SqueezeFM/core/catalog"
	"SqueezeFM/logger"
	"SqueezeFM/model"
)

// CatalogResponse is the library view payload: one filtered page plus the
// facet menu derived from the unfiltered snapshot.
type CatalogResponse struct {
	catalog.Result
	Instruments     []catalog.FacetCount `json:"instruments"`
	SnapshotVersion int64                `json:"snapshotVersion"`
}

// parseFilterState reconstructs the filter state from URL query parameters.
// Absent parameters keep their zero ("clear all") value.
func parseFilterState(r *http.Request) catalog.FilterState {
	q := r.URL.Query()

	state := catalog.FilterState{
		Search:      q.Get("q"),
		Genres:      q["genre"],
		Moods:       q["mood"],
		Instruments: q["instrument"],
		Seasons:     q["season"],
		Tempo:       catalog.TempoBucket(q.Get("tempo")),
		LoopOnly:    q.Get("loop") == "true" || q.Get("loop") == "1",
		StingerOnly: q.Get("stinger") == "true" || q.Get("stinger") == "1",
		Sort:        catalog.SortMode(q.Get("sort")),
		Page:        1,
	}

	switch state.Tempo {
	case catalog.TempoSlow, catalog.TempoMedium, catalog.TempoFast:
	default:
		state.Tempo = catalog.TempoUnset
	}
	if state.Sort != catalog.SortNewest {
		state.Sort = catalog.SortRelevance
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		state.Page = page
	}
	return state
}

// loadSnapshot returns the catalog snapshot, serving from the cache when
// possible and refilling it otherwise. A cache refill carries the version
// issued before the fetch; a stale write (a slower load finishing after a
// newer one) is dropped by the cache. Fetch failure degrades to an empty
// snapshot rather than an error.
func (h *APIHandler) loadSnapshot(r *http.Request) ([]*model.Track, int64) {
	ctx := r.Context()

	cached, version, err := cache.LoadSnapshot(ctx)
	if err != nil {
		logger.Warn("Snapshot cache read failed, falling back to store", logger.ErrorField(err))
	}
	if cached != nil {
		return cached, version
	}

	version, err = cache.NextSnapshotVersion(ctx)
	if err != nil {
		logger.Warn("Failed to issue snapshot version", logger.ErrorField(err))
		version = 0
	}

	tracks, err := h.trackRepo.GetCatalog(h.cfg.CatalogLimit)
	if err != nil {
		logger.Error("Catalog snapshot fetch failed", logger.ErrorField(err))
		return []*model.Track{}, version
	}

	if version > 0 {
		if err := cache.StoreSnapshot(ctx, version, tracks); err != nil {
			if err == cache.ErrStaleSnapshot {
				logger.Debug("Dropped stale snapshot write", logger.Int64("version", version))
			} else {
				logger.Warn("Snapshot cache write failed", logger.ErrorField(err))
			}
		}
	}
	return tracks, version
}

// GetCatalogHandler serves the library view: the filtered, sorted, windowed
// track list plus the instrument facet menu.
func (h *APIHandler) GetCatalogHandler(w http.ResponseWriter, r *http.Request) {
	state := parseFilterState(r)
	snapshot, version := h.loadSnapshot(r)

	result := catalog.Apply(snapshot, state, h.cfg.PageSize, nil)

	respondWithJSON(w, http.StatusOK, CatalogResponse{
		Result:          result,
		Instruments:     catalog.InstrumentFacets(snapshot),
		SnapshotVersion: version,
	})
}
