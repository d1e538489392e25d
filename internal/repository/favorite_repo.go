package repository

import (
	"tubeshare-go/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts the (user, video) relation row. The composite unique index
// rejects a duplicate pair; callers treat that as "already favorited".
func (r *FavoriteRepository) Create(userID, videoID int64) (*model.Favorite, error) {
	fav := &model.Favorite{UserID: userID, VideoID: videoID}
	if err := r.db.Create(fav).Error; err != nil {
		return nil, err
	}
	return fav, nil
}

// Delete removes the relation row. Returns whether a row was removed.
func (r *FavoriteRepository) Delete(userID, videoID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&model.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports membership of the pair.
func (r *FavoriteRepository) Exists(userID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error
	return count > 0, err
}

// FavoritedVideoIDs returns the ids of a user's favorited videos, newest
// favorite first.
func (r *FavoriteRepository) FavoritedVideoIDs(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("video_id", &ids).Error
	return ids, err
}

// BatchCheckFavorited answers membership for a page of video ids in one
// query, so feed annotation never runs per-row lookups.
func (r *FavoriteRepository) BatchCheckFavorited(userID int64, videoIDs []int64) (map[int64]bool, error) {
	if len(videoIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var favVideoIDs []int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &favVideoIDs).Error
	if err != nil {
		return nil, err
	}

	favSet := make(map[int64]bool, len(favVideoIDs))
	for _, id := range favVideoIDs {
		favSet[id] = true
	}

	result := make(map[int64]bool, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = favSet[id]
	}
	return result, nil
}
