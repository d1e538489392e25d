package dto

// SearchVideosRequest are the query params for GET /search/videos.
type SearchVideosRequest struct {
	Query    string `form:"q" binding:"required,min=1"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SearchHit is one search result row.
type SearchHit struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	UploaderName string  `json:"uploaderName"`
	Views        int64   `json:"views"`
	UploadDate   string  `json:"uploadDate"`
	Score        float64 `json:"score,omitempty"`
}

// SearchVideosData is the paginated search response.
type SearchVideosData struct {
	Total    int64       `json:"total"`
	Videos   []SearchHit `json:"videos"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Pages    int64       `json:"pages"`
	Source   string      `json:"source"` // "elasticsearch" or "database"
}
