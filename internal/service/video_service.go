package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/config"
	infraKafka "tubeshare-go/internal/infra/kafka"
	infraMinio "tubeshare-go/internal/infra/minio"
	"tubeshare-go/internal/model"
	"tubeshare-go/internal/repository"
	"tubeshare-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrVideoNotFound = errors.New("video not found")

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type VideoService struct {
	videoRepo    *repository.VideoRepository
	favoriteRepo *repository.FavoriteRepository
	userRepo     *repository.UserRepository
}

func NewVideoService(videoRepo *repository.VideoRepository, favoriteRepo *repository.FavoriteRepository, userRepo *repository.UserRepository) *VideoService {
	return &VideoService{videoRepo: videoRepo, favoriteRepo: favoriteRepo, userRepo: userRepo}
}

// UploadMedia carries one already-opened multipart file.
type UploadMedia struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Ext         string
}

// ListCatalog returns one page of the video catalog, newest upload first,
// optionally filtered by a case-insensitive title substring. When a viewer
// is present, every row is annotated with their favorite status via a
// single bulk membership query.
func (s *VideoService) ListCatalog(page, pageSize int, searchTerm string, viewerID *int64) (*dto.CatalogData, error) {
	skip := (page - 1) * pageSize
	videos, total, err := s.videoRepo.ListCatalog(skip, pageSize, searchTerm)
	if err != nil {
		return nil, err
	}

	favSet := map[int64]bool{}
	if viewerID != nil && len(videos) > 0 {
		ids := make([]int64, 0, len(videos))
		for i := range videos {
			ids = append(ids, videos[i].ID)
		}
		favSet, err = s.favoriteRepo.BatchCheckFavorited(*viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]dto.VideoView, 0, len(videos))
	for i := range videos {
		views = append(views, *toVideoView(&videos[i], favSet[videos[i].ID]))
	}

	pages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.CatalogData{
		Total:  total,
		Videos: views,
		Page:   page,
		Pages:  pages,
	}, nil
}

// GetDetail fetches one video with nested comments and commenters, counts
// the view, and annotates the viewer's favorite status. Every detail fetch
// increments the view count by exactly one.
func (s *VideoService) GetDetail(videoID int64, viewerID *int64) (*dto.VideoView, error) {
	video, err := s.videoRepo.GetByIDWithDetail(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err := s.videoRepo.IncrementViewCount(videoID); err != nil {
		return nil, err
	}
	video.ViewCount++

	isFav := false
	if viewerID != nil {
		isFav, err = s.favoriteRepo.Exists(*viewerID, videoID)
		if err != nil {
			return nil, err
		}
	}

	return toVideoView(video, isFav), nil
}

// Upload stores the media objects and persists the video row with view
// count zero and upload time now, then announces it for index sync. The
// object-store transfer failing rolls the row back so a half-created video
// never reports success.
func (s *VideoService) Upload(uploaderID int64, req *dto.VideoUploadRequest, video UploadMedia, thumbnail *UploadMedia) (*dto.VideoView, error) {
	uploader, err := s.userRepo.GetByID(uploaderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	row := &model.Video{
		UploaderID:  uploaderID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.videoRepo.Create(row); err != nil {
		return nil, err
	}

	cfg := config.GetMinIO()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	objectName := fmt.Sprintf("%d/%d%s", uploaderID, row.ID, video.Ext)
	if _, err := infraMinio.UploadFile(ctx, cfg.VideoBucket, objectName, video.Reader, video.Size, video.ContentType); err != nil {
		logger.Error("Upload to MinIO failed, rolling back video record",
			zap.Int64("video_id", row.ID), zap.Error(err))
		_ = s.videoRepo.Delete(row.ID)
		return nil, fmt.Errorf("failed to store video file: %w", err)
	}
	videoURL := infraMinio.PublicURL(cfg, cfg.VideoBucket, objectName)

	thumbnailURL := ""
	if thumbnail != nil {
		thumbName := fmt.Sprintf("%d/%d%s", uploaderID, row.ID, thumbnail.Ext)
		if _, err := infraMinio.UploadFile(ctx, cfg.ThumbnailBucket, thumbName, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType); err != nil {
			logger.Error("Thumbnail upload failed, rolling back video record",
				zap.Int64("video_id", row.ID), zap.Error(err))
			_ = s.videoRepo.Delete(row.ID)
			return nil, fmt.Errorf("failed to store thumbnail: %w", err)
		}
		thumbnailURL = infraMinio.PublicURL(cfg, cfg.ThumbnailBucket, thumbName)
	}

	updated, err := s.videoRepo.Update(row.ID, map[string]interface{}{
		"video_url":     videoURL,
		"thumbnail_url": thumbnailURL,
	})
	if err != nil {
		return nil, err
	}
	updated.Uploader = *uploader

	s.announce(updated, uploader.DisplayName)
	return toVideoView(updated, false), nil
}

// announce sends the published event; index sync is best effort and never
// fails the upload.
func (s *VideoService) announce(v *model.Video, uploaderName string) {
	kafkaCfg := config.GetKafka()
	topic, ok := kafkaCfg.Topics["video_published"]
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := &infraKafka.VideoPublishedEvent{
		VideoID:      v.ID,
		UploaderID:   v.UploaderID,
		UploaderName: uploaderName,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		UploadDate:   v.UploadDate.Format(time.RFC3339),
	}
	if err := infraKafka.SendVideoPublished(ctx, topic, event); err != nil {
		logger.Warn("Video published event not sent", zap.Int64("video_id", v.ID), zap.Error(err))
	}
}

// toVideoView builds the denormalized projection of a video row loaded with
// uploader and ranked comments.
func toVideoView(v *model.Video, isFavorite bool) *dto.VideoView {
	view := &dto.VideoView{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.ThumbnailURL,
		VideoURL:    v.VideoURL,
		Views:       v.ViewCount,
		UploadDate:  v.UploadDate,
		IsFavorite:  isFavorite,
		Comments:    make([]dto.CommentView, 0, len(v.Comments)),
	}

	if v.Uploader.ID != 0 {
		view.Uploader = &dto.UploaderBrief{
			ID:          v.Uploader.ID,
			DisplayName: v.Uploader.DisplayName,
		}
	}

	for i := range v.Comments {
		view.Comments = append(view.Comments, *toCommentView(&v.Comments[i]))
	}

	return view
}
