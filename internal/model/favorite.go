package model

import "time"

// Favorite is the user/video join row. Presence means "favorited"; the
// composite unique index is the sole defence against duplicate pairs under
// concurrent toggles.
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_video_favorite;index:idx_favorites_user_id" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_user_video_favorite;index:idx_favorites_video_id" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_favorites_created_at" json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
