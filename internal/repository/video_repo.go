package repository

import (
	"strings"

	"tubeshare-go/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// commentOrder ranks comments by likes descending, then dislikes ascending,
// then age as the stable tiebreak.
func commentOrder(db *gorm.DB) *gorm.DB {
	return db.Order("likes DESC, dislikes ASC, created_at ASC")
}

func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// GetByID fetches a bare video row.
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithDetail fetches a video with its uploader and ranked comments
// (each with its author), for the denormalized detail projection.
func (r *VideoRepository) GetByIDWithDetail(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.
		Preload("Uploader").
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// ListCatalog returns one page of the catalog ordered by upload date
// descending, with an optional case-insensitive title substring filter, plus
// the total match count.
func (r *VideoRepository) ListCatalog(skip, limit int, searchTerm string) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{})

	if searchTerm != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(searchTerm)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.
		Preload("Uploader").
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		Order("upload_date DESC").
		Offset(skip).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// GetByIDsWithDetail fetches a batch of videos with nested data. Order of
// the result is unspecified; callers re-order as needed.
func (r *VideoRepository) GetByIDsWithDetail(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.
		Preload("Uploader").
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		Where("id IN ?", ids).
		Find(&videos).Error
	return videos, err
}

// Update applies field updates and returns the fresh row.
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes a video row; its comments cascade.
func (r *VideoRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViewCount adds one view. Column-level increment so concurrent
// detail fetches never lose an update.
func (r *VideoRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
