package model

import "time"

// User is the local record for an identity-provider subject. Rows are
// provisioned lazily on the first authenticated request; the subject id is
// the stable external key, the surrogate id is what everything joins on.
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SubjectID   string    `gorm:"size:255;not null;uniqueIndex:uq_users_subject_id" json:"subject_id"`
	DisplayName string    `gorm:"size:255;not null;default:'Anonymous'" json:"display_name"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Videos    []Video    `gorm:"foreignKey:UploaderID" json:"videos,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
}

func (User) TableName() string {
	return "users"
}
