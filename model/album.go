package model

import (
	"database/sql"
	"time"
)

// Album is the parent bundle a track may belong to. Favorited tracks are
// listed together with their bundle when one exists.
type Album struct {
	ID          int64          `json:"id" gorm:"primaryKey;column:id"`
	Name        string         `json:"name" gorm:"column:name"`
	Artist      string         `json:"artist" gorm:"column:artist"`
	CoverPath   string         `json:"coverPath" gorm:"column:cover_path"`
	ReleaseTime time.Time      `json:"releaseTime" gorm:"column:release_time"`
	Description sql.NullString `json:"-" gorm:"column:description"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"column:updated_at"`
}

// TableName maps Album onto its table for GORM readers.
func (Album) TableName() string {
	return "albums"
}
