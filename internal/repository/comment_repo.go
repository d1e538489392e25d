package repository

import (
	"tubeshare-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDWithUser fetches a comment with its author, for the ownership
// check on delete.
func (r *CommentRepository) GetByIDWithUser(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("User").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByVideo returns a video's comments with authors, ranked by likes
// descending then dislikes ascending, oldest first among full ties.
func (r *CommentRepository) ListByVideo(videoID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Preload("User").
		Where("video_id = ?", videoID).
		Order("likes DESC, dislikes ASC, created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// IncrementLikes adds one like and returns the new count.
func (r *CommentRepository) IncrementLikes(id int64) (int64, error) {
	return r.incrementCounter(id, "likes")
}

// IncrementDislikes adds one dislike and returns the new count.
func (r *CommentRepository) IncrementDislikes(id int64) (int64, error) {
	return r.incrementCounter(id, "dislikes")
}

func (r *CommentRepository) incrementCounter(id int64, column string) (int64, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var count int64
	err := r.db.Model(&model.Comment{}).Where("id = ?", id).
		Pluck(column, &count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
