package repository

import (
	"tubeshare-go/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID looks a user up by surrogate id.
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetBySubjectID looks a user up by the identity-provider subject id.
func (r *UserRepository) GetBySubjectID(subjectID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("subject_id = ?", subjectID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a user row. The unique index on subject_id rejects a
// concurrent duplicate; callers recover by re-fetching.
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// UpdateDisplayName sets a user's display name.
func (r *UserRepository) UpdateDisplayName(id int64, displayName string) error {
	result := r.db.Model(&model.User{}).Where("id = ?", id).
		Update("display_name", displayName)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
