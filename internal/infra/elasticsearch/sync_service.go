package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"tubeshare-go/pkg/logger"

	"go.uber.org/zap"
)

// VideoDoc is the indexed projection of a video.
type VideoDoc struct {
	ID           int64  `json:"id"`
	UploaderID   int64  `json:"uploader_id"`
	UploaderName string `json:"uploader_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ViewCount    int64  `json:"view_count"`
	UploadDate   string `json:"upload_date"`
}

// SyncVideo writes a video document into the index, overwriting any
// previous version of the same id.
func SyncVideo(ctx context.Context, doc *VideoDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, videosIndexName(), fmt.Sprintf("%d", doc.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", doc.ID))
	return nil
}
