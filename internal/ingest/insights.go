// Package ingest feeds data produced outside the request path into the
// stores: insights from a Kafka topic and wearable syncs from an MQTT bus.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"biogram-server/internal/apperr"
	"biogram-server/internal/config"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
)

// InsightMessage is the JSON body of one message on the insights topic.
type InsightMessage struct {
	UserID          string  `json:"user_id" binding:"required"`
	Kind            string  `json:"kind" binding:"required,oneof=action trend reminder suggestion"`
	Priority        string  `json:"priority" binding:"omitempty,oneof=urgent routine followup"`
	Title           string  `json:"title" binding:"required,max=200"`
	Description     string  `json:"description"`
	RelatedRecordID *string `json:"related_record_id"`
}

// Insight converts a validated message into a pending insight.
func (m *InsightMessage) Insight() *models.AIInsight {
	priority := models.Priority(m.Priority)
	if priority == "" {
		priority = models.PriorityRoutine
	}
	return &models.AIInsight{
		UserID:          m.UserID,
		Kind:            models.InsightKind(m.Kind),
		Priority:        priority,
		Title:           strings.TrimSpace(m.Title),
		Description:     m.Description,
		RelatedRecordID: m.RelatedRecordID,
	}
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaReader joins the insights consumer group.
func NewKafkaReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.InsightsTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
}

// RecordLookup resolves a health record owned by a user.
// store.HealthRecordRepository satisfies it.
type RecordLookup interface {
	Get(ctx context.Context, ownerID, id string) (*models.HealthRecord, error)
}

// InsightConsumer persists insights read from Kafka.
type InsightConsumer struct {
	reader   messageReader
	insights store.InsightRepository
	records  RecordLookup
	log      *zap.Logger
}

func NewInsightConsumer(reader messageReader, insights store.InsightRepository, records RecordLookup, log *zap.Logger) *InsightConsumer {
	return &InsightConsumer{reader: reader, insights: insights, records: records, log: log}
}

// Run consumes until ctx is cancelled. Malformed messages are logged and
// committed; a storage failure stops the consumer without committing so the
// message is redelivered.
func (c *InsightConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch insight message: %w", err)
		}

		if err := c.Handle(ctx, msg); err != nil {
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				return err
			}
			c.log.Warn("skipping invalid insight message",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit insight message: %w", err)
		}
	}
}

// Handle stores the insight carried by msg.
func (c *InsightConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	var body InsightMessage
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		return apperr.Validation("", "malformed JSON: "+err.Error())
	}
	if err := utils.Validate(&body); err != nil {
		return err
	}

	insight := body.Insight()
	if err := c.checkRelatedRecord(ctx, insight); err != nil {
		return err
	}
	if err := c.insights.Create(ctx, insight); err != nil {
		return fmt.Errorf("store insight for %s: %w", body.UserID, err)
	}
	c.log.Debug("insight stored",
		zap.String("user_id", insight.UserID),
		zap.String("insight_id", insight.ID),
		zap.String("kind", string(insight.Kind)),
	)
	return nil
}

// checkRelatedRecord drops a link to a record the insight's user does not own.
func (c *InsightConsumer) checkRelatedRecord(ctx context.Context, insight *models.AIInsight) error {
	if insight.RelatedRecordID == nil {
		return nil
	}
	id := strings.TrimSpace(*insight.RelatedRecordID)
	if id == "" {
		insight.RelatedRecordID = nil
		return nil
	}
	_, err := c.records.Get(ctx, insight.UserID, id)
	if errors.Is(err, apperr.ErrNotFound) {
		c.log.Warn("dropping link to a record the user does not own",
			zap.String("user_id", insight.UserID),
			zap.String("record_id", id),
		)
		insight.RelatedRecordID = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up related record %s: %w", id, err)
	}
	insight.RelatedRecordID = &id
	return nil
}
