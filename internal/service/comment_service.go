package service

import (
	"errors"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/model"
	"tubeshare-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentNoPermission = errors.New("you do not have permission to delete this comment")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
	userRepo    *repository.UserRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository, userRepo *repository.UserRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, userRepo: userRepo}
}

// Create posts a comment on an existing video. Content is stored verbatim.
func (s *CommentService) Create(userID, videoID int64, content string) (*dto.CommentView, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	author, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		UserID:  userID,
		VideoID: videoID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	comment.User = *author

	return toCommentView(comment), nil
}

// ListByVideo returns a video's comments ranked by likes descending, then
// dislikes ascending, each carrying its author's display name.
func (s *CommentService) ListByVideo(videoID int64) ([]dto.CommentView, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListByVideo(videoID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, *toCommentView(&comments[i]))
	}
	return views, nil
}

// Delete removes a comment iff the requester authored it. A non-author
// gets a permission error and the row is untouched.
func (s *CommentService) Delete(commentID, requestingUserID int64) error {
	comment, err := s.commentRepo.GetByIDWithUser(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != requestingUserID {
		return ErrCommentNoPermission
	}

	return s.commentRepo.Delete(commentID)
}

// Like adds one like and returns the new count. No per-user dedup: the same
// user may like a comment repeatedly.
func (s *CommentService) Like(commentID int64) (int64, error) {
	count, err := s.commentRepo.IncrementLikes(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}
	return count, nil
}

// Dislike adds one dislike and returns the new count.
func (s *CommentService) Dislike(commentID int64) (int64, error) {
	count, err := s.commentRepo.IncrementDislikes(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}
	return count, nil
}

func toCommentView(c *model.Comment) *dto.CommentView {
	view := &dto.CommentView{
		ID:        c.ID,
		VideoID:   c.VideoID,
		UserID:    c.UserID,
		Content:   c.Content,
		Likes:     c.Likes,
		Dislikes:  c.Dislikes,
		CreatedAt: c.CreatedAt,
	}
	if c.User.ID != 0 {
		view.DisplayName = c.User.DisplayName
	}
	return view
}
