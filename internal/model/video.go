package model

import "time"

// Video metadata row. The binary media lives in object storage; only the
// public URLs are persisted here.
type Video struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UploaderID   int64     `gorm:"not null;index:idx_videos_uploader_id" json:"uploader_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ThumbnailURL string    `gorm:"size:500" json:"thumbnail"`
	VideoURL     string    `gorm:"size:500" json:"videoUrl"`
	ViewCount    int64     `gorm:"not null;default:0" json:"views"`
	UploadDate   time.Time `gorm:"autoCreateTime;index:idx_videos_upload_date" json:"uploadDate"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Uploader  User       `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:VideoID" json:"comments,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:VideoID" json:"favorites,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
