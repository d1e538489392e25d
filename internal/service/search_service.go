package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/config"
	infraES "tubeshare-go/internal/infra/elasticsearch"
	"tubeshare-go/internal/model"
	"tubeshare-go/internal/repository"
	"tubeshare-go/pkg/logger"

	"go.uber.org/zap"
)

type SearchService struct {
	videoRepo *repository.VideoRepository
}

func NewSearchService(videoRepo *repository.VideoRepository) *SearchService {
	return &SearchService{videoRepo: videoRepo}
}

// SearchVideos queries the search index, falling back to the relational
// title filter when Elasticsearch is unavailable.
func (s *SearchService) SearchVideos(req *dto.SearchVideosRequest) (*dto.SearchVideosData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	data, err := s.searchFromES(req)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(req)
	}
	return data, nil
}

func (s *SearchService) searchFromES(req *dto.SearchVideosRequest) (*dto.SearchVideosData, error) {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["videos"]
	if indexName == "" {
		indexName = "videos"
	}

	query := buildESQuery(req)
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, indexName, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64          `json:"_score"`
				Source infraES.VideoDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	hits := make([]dto.SearchHit, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		hits = append(hits, dto.SearchHit{
			ID:           h.Source.ID,
			Title:        h.Source.Title,
			Description:  h.Source.Description,
			UploaderName: h.Source.UploaderName,
			Views:        h.Source.ViewCount,
			UploadDate:   h.Source.UploadDate,
			Score:        h.Score,
		})
	}

	return buildSearchData(hits, esResp.Hits.Total.Value, req.Page, req.PageSize, "elasticsearch"), nil
}

func (s *SearchService) searchFromDB(req *dto.SearchVideosRequest) (*dto.SearchVideosData, error) {
	skip := (req.Page - 1) * req.PageSize
	videos, total, err := s.videoRepo.ListCatalog(skip, req.PageSize, req.Query)
	if err != nil {
		return nil, err
	}

	hits := make([]dto.SearchHit, 0, len(videos))
	for i := range videos {
		hits = append(hits, *videoToSearchHit(&videos[i]))
	}

	return buildSearchData(hits, total, req.Page, req.PageSize, "database"), nil
}

func buildESQuery(req *dto.SearchVideosRequest) map[string]interface{} {
	q := strings.TrimSpace(req.Query)

	boolQ := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    q,
					"fields":   []string{"title^3", "description^1"},
					"type":     "best_fields",
					"operator": "or",
				},
			},
		},
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQ,
		},
		"from": (req.Page - 1) * req.PageSize,
		"size": req.PageSize,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"upload_date": map[string]string{"order": "desc"}},
		},
	}
}

func buildSearchData(hits []dto.SearchHit, total int64, page, pageSize int, source string) *dto.SearchVideosData {
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.SearchVideosData{
		Total:    total,
		Videos:   hits,
		Page:     page,
		PageSize: pageSize,
		Pages:    pages,
		Source:   source,
	}
}

func videoToSearchHit(v *model.Video) *dto.SearchHit {
	hit := &dto.SearchHit{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Views:       v.ViewCount,
		UploadDate:  v.UploadDate.Format(time.RFC3339),
	}
	if v.Uploader.ID != 0 {
		hit.UploaderName = v.Uploader.DisplayName
	}
	return hit
}
