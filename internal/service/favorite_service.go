package service

import (
	"errors"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/repository"

	"gorm.io/gorm"
)

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	videoRepo    *repository.VideoRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, videoRepo *repository.VideoRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, videoRepo: videoRepo}
}

// Toggle flips the (user, video) favorite relation and reports the new
// state: true means the pair is now favorited. Toggling twice always
// returns to the original state. Two concurrent toggles can both observe
// an absent row; the composite unique index rejects the second insert and
// that caller still reports "added" since the row exists either way.
func (s *FavoriteService) Toggle(userID, videoID int64) (bool, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrVideoNotFound
		}
		return false, err
	}

	exists, err := s.favoriteRepo.Exists(userID, videoID)
	if err != nil {
		return false, err
	}

	if exists {
		if _, err := s.favoriteRepo.Delete(userID, videoID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := s.favoriteRepo.Create(userID, videoID); err != nil {
		nowExists, checkErr := s.favoriteRepo.Exists(userID, videoID)
		if checkErr == nil && nowExists {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// IsFavorited reports membership of the pair.
func (s *FavoriteService) IsFavorited(userID, videoID int64) (bool, error) {
	return s.favoriteRepo.Exists(userID, videoID)
}

// ListFavoritedVideos returns the user's full favorited set as a catalog
// projection, newest favorite first, every row marked isFavorite. The set
// is returned whole: page 1, pages 1 when non-empty, total = set size.
func (s *FavoriteService) ListFavoritedVideos(userID int64) (*dto.CatalogData, error) {
	ids, err := s.favoriteRepo.FavoritedVideoIDs(userID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDsWithDetail(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]int, len(videos))
	for i := range videos {
		byID[videos[i].ID] = i
	}

	views := make([]dto.VideoView, 0, len(videos))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			continue
		}
		views = append(views, *toVideoView(&videos[i], true))
	}

	var pages int64
	if len(views) > 0 {
		pages = 1
	}

	return &dto.CatalogData{
		Total:  int64(len(views)),
		Videos: views,
		Page:   1,
		Pages:  pages,
	}, nil
}
