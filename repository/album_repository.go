package repository

import (
	"database/sql"
	"fmt"

	"SqueezeFM/model"
)

// AlbumRepository defines the interface for bundle (album) reads.
type AlbumRepository interface {
	GetAlbumByID(id int64) (*model.Album, error)
}

// mysqlAlbumRepository implements AlbumRepository for MySQL.
type mysqlAlbumRepository struct {
	db *sql.DB
}

// NewMySQLAlbumRepository creates a new mysqlAlbumRepository.
func NewMySQLAlbumRepository(db *sql.DB) AlbumRepository {
	return &mysqlAlbumRepository{db: db}
}

// GetAlbumByID retrieves a bundle by its ID. Returns (nil, nil) when missing.
func (r *mysqlAlbumRepository) GetAlbumByID(id int64) (*model.Album, error) {
	query := "SELECT id, name, artist, cover_path, release_time, description, created_at, updated_at FROM albums WHERE id = ?"
	row := r.db.QueryRow(query, id)

	album := &model.Album{}
	err := row.Scan(&album.ID, &album.Name, &album.Artist, &album.CoverPath, &album.ReleaseTime, &album.Description, &album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Album not found
		}
		return nil, fmt.Errorf("failed to scan album by ID %d: %w", id, err)
	}
	return album, nil
}
