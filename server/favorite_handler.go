package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"SqueezeFM/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// FavoriteRequest is the toggle request body.
type FavoriteRequest struct {
	TrackID int64 `json:"trackId"`
}

// GetFavoriteStatusHandler is the per-track existence lookup the detail page
// mounts with.
func (h *APIHandler) GetFavoriteStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	trackID, err := strconv.ParseInt(mux.Vars(r)["track_id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	favorited, err := h.favoriteRepo.IsFavorited(userID, trackID)
	if err != nil {
		// Degrade to "not favorited"; the toggle stays usable.
		logger.Error("Favorite status lookup failed",
			logger.Int64("userId", userID), logger.Int64("trackId", trackID), logger.ErrorField(err))
		favorited = false
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// AddFavoriteHandler turns a favorite on. Anonymous callers get their intent
// recorded into the pending list keyed by their storefront client ID and are
// pointed at the auth entry point instead.
func (h *APIHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, authenticated := optionalUserID(r)
	if !authenticated {
		clientID := r.Header.Get("X-Client-Id")
		if clientID == "" {
			clientID = uuid.New().String()
		}
		if err := h.pendingFavorites.AddPendingFavorite(r.Context(), clientID, req.TrackID); err != nil {
			logger.Error("Failed to record pending favorite",
				logger.String("clientId", clientID), logger.Int64("trackId", req.TrackID), logger.ErrorField(err))
		}
		respondWithJSON(w, http.StatusUnauthorized, map[string]string{
			"clientId": clientID,
			"loginUrl": "/login",
		})
		return
	}

	if err := h.favoriteRepo.AddFavorite(userID, req.TrackID); err != nil {
		// Favorite toggle failures are logged, never surfaced as alerts;
		// the client reverts its optimistic flip on this status.
		logger.Error("Failed to add favorite",
			logger.Int64("userId", userID), logger.Int64("trackId", req.TrackID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"favorited": true})
}

// RemoveFavoriteHandler turns a favorite off.
func (h *APIHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	trackID, err := strconv.ParseInt(mux.Vars(r)["track_id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	if err := h.favoriteRepo.RemoveFavorite(userID, trackID); err != nil {
		logger.Error("Failed to remove favorite",
			logger.Int64("userId", userID), logger.Int64("trackId", trackID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"favorited": false})
}

// ListFavoritesHandler returns the user's favorites joined with each track's
// parent bundle.
func (h *APIHandler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	favorites, err := h.favoriteRepo.ListFavorites(userID)
	if err != nil {
		logger.Error("Failed to list favorites", logger.Int64("userId", userID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list favorites")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"favorites": favorites})
}

// ReconcileFavoritesHandler merges the pre-auth pending list into the
// favorites relation and clears it. Inserts are idempotent, so replays and
// already-favorited tracks are harmless.
func (h *APIHandler) ReconcileFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ClientID string `json:"clientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID == "" {
		respondWithError(w, http.StatusBadRequest, "Client ID is required")
		return
	}

	pending, err := h.pendingFavorites.GetPendingFavorites(r.Context(), req.ClientID)
	if err != nil {
		logger.Error("Failed to read pending favorites",
			logger.String("clientId", req.ClientID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to reconcile favorites")
		return
	}

	merged := 0
	for _, trackID := range pending {
		if err := h.favoriteRepo.AddFavorite(userID, trackID); err != nil {
			logger.Error("Failed to merge pending favorite",
				logger.Int64("userId", userID), logger.Int64("trackId", trackID), logger.ErrorField(err))
			continue
		}
		merged++
	}

	if err := h.pendingFavorites.ClearPendingFavorites(r.Context(), req.ClientID); err != nil {
		logger.Warn("Failed to clear pending favorites",
			logger.String("clientId", req.ClientID), logger.ErrorField(err))
	}

	logger.Info("Reconciled pending favorites",
		logger.Int64("userId", userID), logger.Int("merged", merged))
	respondWithJSON(w, http.StatusOK, map[string]int{"merged": merged})
}
