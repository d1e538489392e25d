package model

import "time"

// Comment on a video. Likes/dislikes are plain counters with no per-user
// dedup. Comments cannot outlive their video (cascade on video delete).
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_comments_user_id" json:"user_id"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_id" json:"video_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Likes     int64     `gorm:"not null;default:0" json:"likes"`
	Dislikes  int64     `gorm:"not null;default:0" json:"dislikes"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
