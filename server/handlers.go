package server

import (
	"encoding/json"
	"net/http"

	"SqueezeFM/cache"
	"SqueezeFM/config"
	"SqueezeFM/logger"
	"SqueezeFM/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	trackRepo        repository.TrackRepository
	userRepo         repository.UserRepository
	albumRepo        repository.AlbumRepository
	favoriteRepo     repository.FavoriteRepository
	pricingRepo      repository.PricingRepository
	couponRepo       repository.CouponRepository
	pendingFavorites cache.PendingFavoriteStore
	hub              *CatalogHub
	cfg              *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	trackRepo repository.TrackRepository,
	userRepo repository.UserRepository,
	albumRepo repository.AlbumRepository,
	favoriteRepo repository.FavoriteRepository,
	pricingRepo repository.PricingRepository,
	couponRepo repository.CouponRepository,
	pendingFavorites cache.PendingFavoriteStore,
	hub *CatalogHub,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		trackRepo:        trackRepo,
		userRepo:         userRepo,
		albumRepo:        albumRepo,
		favoriteRepo:     favoriteRepo,
		pricingRepo:      pricingRepo,
		couponRepo:       couponRepo,
		pendingFavorites: pendingFavorites,
		hub:              hub,
		cfg:              cfg,
	}
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}
