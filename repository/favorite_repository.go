package repository

import (
	"errors"
	"fmt"

	"SqueezeFM/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines the interface for wishlist operations.
type FavoriteRepository interface {
	// IsFavorited is the existence lookup keyed by (user, track).
	IsFavorited(userID, trackID int64) (bool, error)
	// AddFavorite inserts the pair; inserting an existing pair is a no-op.
	AddFavorite(userID, trackID int64) error
	// RemoveFavorite deletes the pair; removing a missing pair is a no-op.
	RemoveFavorite(userID, trackID int64) error
	// ListFavorites returns the user's favorites joined with each track and
	// its parent bundle, newest first.
	ListFavorites(userID int64) ([]model.FavoriteWithBundle, error)
}

// gormFavoriteRepository implements FavoriteRepository with GORM.
type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new gormFavoriteRepository.
func NewGormFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: db}
}

func (r *gormFavoriteRepository) IsFavorited(userID, trackID int64) (bool, error) {
	var fav model.Favorite
	err := r.db.Where("user_id = ? AND track_id = ?", userID, trackID).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite for user %d track %d: %w", userID, trackID, err)
	}
	return true, nil
}

func (r *gormFavoriteRepository) AddFavorite(userID, trackID int64) error {
	fav := model.Favorite{UserID: userID, TrackID: trackID}
	// DoNothing keeps the insert idempotent under the unique (user, track) index.
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite for user %d track %d: %w", userID, trackID, err)
	}
	return nil
}

func (r *gormFavoriteRepository) RemoveFavorite(userID, trackID int64) error {
	err := r.db.Where("user_id = ? AND track_id = ?", userID, trackID).Delete(&model.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite for user %d track %d: %w", userID, trackID, err)
	}
	return nil
}

func (r *gormFavoriteRepository) ListFavorites(userID int64) ([]model.FavoriteWithBundle, error) {
	var favorites []model.Favorite
	err := r.db.Preload("Track").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %d: %w", userID, err)
	}

	out := make([]model.FavoriteWithBundle, 0, len(favorites))
	for _, fav := range favorites {
		entry := model.FavoriteWithBundle{Favorite: fav, Track: fav.Track}
		if fav.Track != nil && fav.Track.AlbumID != nil {
			var album model.Album
			err := r.db.First(&album, *fav.Track.AlbumID).Error
			if err == nil {
				entry.Album = &album
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to load bundle %d for favorite: %w", *fav.Track.AlbumID, err)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
