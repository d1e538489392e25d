package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tubeshare-go/internal/config"
	infraES "tubeshare-go/internal/infra/elasticsearch"
	infraKafka "tubeshare-go/internal/infra/kafka"
	"tubeshare-go/pkg/logger"

	"go.uber.org/zap"
)

// The worker keeps the search index in step with the catalog: it consumes
// video_published events and writes each one into Elasticsearch.
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["video_published"]
	groupID := "tubeshare-index-worker"

	logger.Info("Index worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	indexEvent := func(event *infraKafka.VideoPublishedEvent) error {
		doc := &infraES.VideoDoc{
			ID:           event.VideoID,
			UploaderID:   event.UploaderID,
			UploaderName: event.UploaderName,
			Title:        event.Title,
			Description:  event.Description,
			UploadDate:   event.UploadDate,
		}
		if err := infraES.SyncVideo(ctx, doc); err != nil {
			return err
		}
		logger.Info("Video indexed", zap.Int64("video_id", event.VideoID))
		return nil
	}

	infraKafka.StartVideoPublishedConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, indexEvent)

	logger.Info("Index worker stopped")
}
