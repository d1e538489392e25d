package dto

// CommentCreateRequest is the body for POST /videos/:id/comments.
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}
