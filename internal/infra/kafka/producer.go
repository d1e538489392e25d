package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tubeshare-go/internal/config"
	"tubeshare-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// VideoPublishedEvent announces a newly stored video so the search index
// can be brought up to date out of band.
type VideoPublishedEvent struct {
	VideoID      int64  `json:"video_id"`
	UploaderID   int64  `json:"uploader_id"`
	UploaderName string `json:"uploader_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	UploadDate   string `json:"upload_date"`
}

// InitProducer sets up the Kafka writer.
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendVideoPublished publishes a video-published event.
func SendVideoPublished(ctx context.Context, topic string, event *VideoPublishedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal video published event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", event.VideoID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video published event: %w", err)
	}

	logger.Info("Video published event sent",
		zap.Int64("video_id", event.VideoID),
		zap.String("topic", topic),
	)

	return nil
}

// CloseProducer closes the Kafka writer.
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
