package model

import "time"

// Favorite is the (user, track) relation behind the wishlist. At most one row
// exists per pair, enforced by a composite unique index.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" gorm:"column:user_id;uniqueIndex:uq_user_track"`
	TrackID   int64     `json:"trackId" gorm:"column:track_id;uniqueIndex:uq_user_track"`
	CreatedAt time.Time `json:"createdAt"`

	Track *Track `json:"track,omitempty" gorm:"foreignKey:TrackID"`
}

// TableName maps Favorite onto its table.
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteWithBundle is one row of the joined favorites read: the favorite,
// its track and the track's parent bundle when it has one.
type FavoriteWithBundle struct {
	Favorite Favorite `json:"favorite"`
	Track    *Track   `json:"track"`
	Album    *Album   `json:"album,omitempty"`
}
