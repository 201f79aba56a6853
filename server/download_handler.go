package server

import (
	"encoding/json"
	"net/http"
	"time"

	"SqueezeFM/logger"
	"SqueezeFM/storage"
)

// DownloadRequest is the download issuance request body.
type DownloadRequest struct {
	TrackID int64 `json:"trackId"`
}

// DownloadHandler issues a presigned download URL for a track's download
// object. The client fetches the URL and saves the file under the returned
// name; the extension follows from whether the object key is a zip bundle.
func (h *APIHandler) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	track, err := h.trackRepo.GetTrackByID(req.TrackID)
	if err != nil {
		logger.Error("Failed to load track for download",
			logger.Int64("trackId", req.TrackID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to prepare download")
		return
	}
	if track == nil || track.DownloadKey == "" {
		respondWithError(w, http.StatusNotFound, "No download available for this track")
		return
	}

	fileName := storage.DownloadFilename(track.Title, track.DownloadKey)
	expiry := time.Duration(h.cfg.DownloadURLExpiryMinutes) * time.Minute

	downloadURL, err := storage.PresignDownloadURL(r.Context(), h.cfg.MinioBucket, track.DownloadKey, fileName, expiry)
	if err != nil {
		logger.Error("Failed to presign download URL",
			logger.Int64("userId", userID), logger.Int64("trackId", req.TrackID), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to prepare download")
		return
	}

	logger.Info("Issued download URL",
		logger.Int64("userId", userID), logger.Int64("trackId", req.TrackID), logger.String("fileName", fileName))
	respondWithJSON(w, http.StatusOK, map[string]string{
		"downloadUrl": downloadURL,
		"fileName":    fileName,
	})
}
