package server

import (
	"net/http"
	"strconv"

	"SqueezeFM/core/catalog"
	"SqueezeFM/core/seo"
	"SqueezeFM/logger"
	"SqueezeFM/model"

	"github.com/gorilla/mux"
)

const similarCandidatePool = 50

// TrackDetailResponse is the track page payload: the track, its parent
// bundle when it has one, resolved license prices and the two structured
// data descriptors injected for search engines.
type TrackDetailResponse struct {
	Track          *model.Track             `json:"track"`
	Album          *model.Album             `json:"album,omitempty"`
	Lyrics         string                   `json:"lyrics,omitempty"`
	Prices         map[string]model.Pricing `json:"prices"`
	StructuredData []interface{}            `json:"structuredData"`
}

func parseTrackID(r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetTrackHandler serves the track detail page data.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTrackID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	track, err := h.trackRepo.GetTrackByID(id)
	if err != nil {
		logger.Error("Failed to load track", logger.Int64("trackId", id), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load track")
		return
	}
	if track == nil {
		respondWithError(w, http.StatusNotFound, "Track not found")
		return
	}

	resp := TrackDetailResponse{Track: track}
	if track.Lyrics.Valid {
		resp.Lyrics = track.Lyrics.String
	}

	// Bundle lookup chains after track resolution; bundle failure only
	// degrades the page, it never blocks it.
	if track.AlbumID != nil {
		album, err := h.albumRepo.GetAlbumByID(*track.AlbumID)
		if err != nil {
			logger.Warn("Failed to load parent bundle", logger.Int64("albumId", *track.AlbumID), logger.ErrorField(err))
		} else {
			resp.Album = album
		}
	}

	resp.Prices = h.resolvePrices()

	standard := resp.Prices[model.ProductTypeStandard]
	resp.StructuredData = []interface{}{
		seo.TrackRecording(track, h.cfg.SiteURL),
		seo.TrackProduct(track, standard, h.cfg.SiteURL),
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// resolvePrices loads the pricing catalog and fills every license tier,
// falling back to the built-in literals for tiers with no matching row.
func (h *APIHandler) resolvePrices() map[string]model.Pricing {
	prices, err := h.pricingRepo.GetAll()
	if err != nil {
		logger.Warn("Pricing catalog read failed, using fallbacks", logger.ErrorField(err))
		prices = map[string]model.Pricing{}
	}
	for _, productType := range []string{model.ProductTypeStandard, model.ProductTypeExtended, model.ProductTypeSubscription} {
		if _, ok := prices[productType]; !ok {
			prices[productType] = model.FallbackPricing(productType)
		}
	}
	return prices
}

// GetSimilarTracksHandler serves the top recommendations for a track.
func (h *APIHandler) GetSimilarTracksHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTrackID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	track, err := h.trackRepo.GetTrackByID(id)
	if err != nil {
		logger.Error("Failed to load track", logger.Int64("trackId", id), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load track")
		return
	}
	if track == nil {
		respondWithError(w, http.StatusNotFound, "Track not found")
		return
	}

	pool, err := h.trackRepo.GetSimilarCandidates(id, similarCandidatePool)
	if err != nil {
		// Degrade to an empty recommendation strip.
		logger.Error("Failed to load similar candidates", logger.Int64("trackId", id), logger.ErrorField(err))
		pool = []*model.Track{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"similar": catalog.TopSimilar(track, pool, catalog.SimilarLimit),
	})
}

// GetSimilarFilterHandler serves the "find similar" facet seeding: a fresh
// filter state derived from the reference track, ready to re-enter the
// library pipeline.
func (h *APIHandler) GetSimilarFilterHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTrackID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	track, err := h.trackRepo.GetTrackByID(id)
	if err != nil {
		logger.Error("Failed to load track", logger.Int64("trackId", id), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load track")
		return
	}
	if track == nil {
		respondWithError(w, http.StatusNotFound, "Track not found")
		return
	}

	state := catalog.SeedSimilarFilter(track)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"genre": state.Genres,
		"mood":  state.Moods,
		"sort":  state.Sort,
		"page":  state.Page,
	})
}
