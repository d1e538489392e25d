package dto

import "time"

// VideoUploadRequest is the multipart form for POST /videos/upload. The
// media files ride alongside as form files.
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty"`
}

// UploaderBrief is the uploader identity nested in a video row.
type UploaderBrief struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
}

// CommentView is a comment with its author's display name, as nested in
// video projections and comment listings.
type CommentView struct {
	ID          int64     `json:"id"`
	VideoID     int64     `json:"videoId"`
	UserID      int64     `json:"userId"`
	Content     string    `json:"content"`
	Likes       int64     `json:"likes"`
	Dislikes    int64     `json:"dislikes"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VideoView is the denormalized video row returned by the catalog and
// detail endpoints: uploader identity and ranked comments inline, plus the
// requesting user's favorite status.
type VideoView struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Thumbnail   string         `json:"thumbnail"`
	VideoURL    string         `json:"videoUrl"`
	Views       int64          `json:"views"`
	UploadDate  time.Time      `json:"uploadDate"`
	IsFavorite  bool           `json:"isFavorite"`
	Uploader    *UploaderBrief `json:"uploader,omitempty"`
	Comments    []CommentView  `json:"comments"`
}

// CatalogData is the paginated catalog response.
type CatalogData struct {
	Total  int64       `json:"total"`
	Videos []VideoView `json:"videos"`
	Page   int         `json:"page"`
	Pages  int64       `json:"pages"`
}
