package repository

import (
	"database/sql"
	"fmt"
	"time"

	"SqueezeFM/db"
	"SqueezeFM/model"
)

// TrackRepository defines the interface for catalog track data operations.
type TrackRepository interface {
	CreateTrack(track *model.Track) (int64, error)
	GetTrackByID(id int64) (*model.Track, error)
	// GetCatalog returns the snapshot all client-side filtering runs over.
	// There is no server-side filter pushdown; the limit caps snapshot size.
	GetCatalog(limit int) ([]*model.Track, error)
	// GetSimilarCandidates returns the bounded candidate pool for the
	// similarity scorer, excluding the reference track itself.
	GetSimilarCandidates(excludeID int64, limit int) ([]*model.Track, error)
}

const trackColumns = `id, title, artist, album_id, genre, mood, instrument, season, media_theme, keywords, edit_cuts,
	bpm, duration, release_year, lyrics, credits,
	standard_variant_id, extended_variant_id, subscription_variant_id,
	preview_key, download_key, created_at, updated_at`

// mysqlTrackRepository implements TrackRepository for MySQL.
type mysqlTrackRepository struct {
	DB *sql.DB
}

// NewMySQLTrackRepository creates a new instance of mysqlTrackRepository.
func NewMySQLTrackRepository() TrackRepository {
	return &mysqlTrackRepository{DB: db.DB}
}

func scanTrack(row interface{ Scan(...interface{}) error }) (*model.Track, error) {
	track := &model.Track{}
	err := row.Scan(
		&track.ID, &track.Title, &track.Artist, &track.AlbumID,
		&track.Genre, &track.Mood, &track.Instrument, &track.Season, &track.MediaTheme, &track.Keywords, &track.EditCuts,
		&track.BPM, &track.Duration, &track.ReleaseYear, &track.Lyrics, &track.Credits,
		&track.StandardVariantID, &track.ExtendedVariantID, &track.SubscriptionVariantID,
		&track.PreviewKey, &track.DownloadKey, &track.CreatedAt, &track.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return track, nil
}

// CreateTrack adds a new track to the catalog.
func (r *mysqlTrackRepository) CreateTrack(track *model.Track) (int64, error) {
	query := `INSERT INTO squeeze_tracks (title, artist, album_id, genre, mood, instrument, season, media_theme, keywords, edit_cuts,
		bpm, duration, release_year, lyrics, credits,
		standard_variant_id, extended_variant_id, subscription_variant_id,
		preview_key, download_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateTrack: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(
		track.Title, track.Artist, track.AlbumID,
		track.Genre, track.Mood, track.Instrument, track.Season, track.MediaTheme, track.Keywords, track.EditCuts,
		track.BPM, track.Duration, track.ReleaseYear, track.Lyrics, track.Credits,
		track.StandardVariantID, track.ExtendedVariantID, track.SubscriptionVariantID,
		track.PreviewKey, track.DownloadKey, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateTrack: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateTrack: %w", err)
	}
	return id, nil
}

// GetTrackByID retrieves a track by its ID. Returns (nil, nil) when missing.
func (r *mysqlTrackRepository) GetTrackByID(id int64) (*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM squeeze_tracks WHERE id = ?`
	track, err := scanTrack(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Track not found
		}
		return nil, fmt.Errorf("failed to scan track by ID %d: %w", id, err)
	}
	return track, nil
}

// GetCatalog retrieves the catalog snapshot, capped at limit rows.
func (r *mysqlTrackRepository) GetCatalog(limit int) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM squeeze_tracks ORDER BY id LIMIT ?`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog snapshot: %w", err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in GetCatalog: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetCatalog: %w", err)
	}

	return tracks, nil
}

// GetSimilarCandidates retrieves the most recent tracks other than excludeID.
func (r *mysqlTrackRepository) GetSimilarCandidates(excludeID int64, limit int) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM squeeze_tracks WHERE id != ? ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.DB.Query(query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar candidates for track %d: %w", excludeID, err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in GetSimilarCandidates: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetSimilarCandidates: %w", err)
	}

	return tracks, nil
}
