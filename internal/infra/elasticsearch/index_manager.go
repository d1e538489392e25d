package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tubeshare-go/internal/config"
	"tubeshare-go/pkg/logger"

	"go.uber.org/zap"
)

// videosIndexName resolves the configured videos index name.
func videosIndexName() string {
	cfg := config.GetElasticsearch()
	name := cfg.Index["videos"]
	if name == "" {
		name = "videos"
	}
	return name
}

// GetVideosIndexMapping returns the mapping for the videos index.
func GetVideosIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"uploader_id": {"type": "long"},
				"uploader_name": {"type": "keyword"},
				"title": {
					"type": "text",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
				},
				"description": {"type": "text"},
				"view_count": {"type": "long"},
				"upload_date": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureVideosIndex creates the videos index when missing.
func EnsureVideosIndex(ctx context.Context) error {
	indexName := videosIndexName()

	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", indexName))
		return nil
	}

	body := bytes.NewReader([]byte(GetVideosIndexMapping()))
	resp, err := IndicesCreate(ctx, indexName, body)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", indexName))
	return nil
}

// InitIndexes ensures all indexes exist. Called at startup.
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureVideosIndex(ctx)
}
