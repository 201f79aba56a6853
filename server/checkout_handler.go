package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"SqueezeFM/core/checkout"
	"SqueezeFM/logger"
)

// CheckoutRequest is the checkout link request body.
type CheckoutRequest struct {
	TrackID     int64  `json:"trackId"`
	LicenseType string `json:"licenseType"`
}

// CheckoutHandler constructs the payment processor checkout URL for a
// license purchase. The client navigates to it; payment never touches this
// service.
func (h *APIHandler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	track, err := h.trackRepo.GetTrackByID(req.TrackID)
	if err != nil {
		logger.Error("Failed to load track for checkout",
			logger.Int64("trackId", req.TrackID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to prepare checkout")
		return
	}
	if track == nil {
		respondWithError(w, http.StatusNotFound, "Track not found")
		return
	}

	checkoutURL, err := checkout.BuildURL(h.cfg.CheckoutBaseURL, track, req.LicenseType, userID)
	if err != nil {
		if errors.Is(err, checkout.ErrUnknownLicenseType) {
			respondWithError(w, http.StatusBadRequest, "Unknown license type")
			return
		}
		logger.Error("Failed to build checkout URL",
			logger.Int64("userId", userID), logger.Int64("trackId", req.TrackID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to prepare checkout")
		return
	}

	logger.Info("Issued checkout URL",
		logger.Int64("userId", userID), logger.Int64("trackId", req.TrackID), logger.String("license", req.LicenseType))
	respondWithJSON(w, http.StatusOK, map[string]string{"checkoutUrl": checkoutURL})
}
