package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scribehq/scribe-be/internal/models"
)

// EventServiceProvider defines the interface for the audit trail.
type EventServiceProvider interface {
	Record(ctx context.Context, q sqlx.ExtContext, eventType, level, message string, blogID *string) error
	Recent(ctx context.Context, q sqlx.ExtContext, limit int) ([]models.Event, error)
}

// EventService records and serves audit events.
type EventService struct{}

// NewEventService creates a new EventService.
func NewEventService() *EventService {
	return &EventService{}
}

// Record writes a new audit event.
func (s *EventService) Record(ctx context.Context, q sqlx.ExtContext, eventType, level, message string, blogID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		BlogID:    blogID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO events (id, type, level, message, blog_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Type, event.Level, event.Message, event.BlogID, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// Recent retrieves the most recent audit events.
func (s *EventService) Recent(ctx context.Context, q sqlx.ExtContext, limit int) ([]models.Event, error) {
	events := []models.Event{}
	err := sqlx.SelectContext(ctx, q, &events,
		`SELECT id, type, level, message, blog_id, created_at FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return events, nil
}
