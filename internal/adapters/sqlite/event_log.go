package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/microdecide/internal/ports/secondary"
)

// EventLog implements secondary.EventLog with SQLite.
type EventLog struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventLog creates a new SQLite analytics event log.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db, now: time.Now}
}

// Track appends an event.
func (l *EventLog) Track(ctx context.Context, event secondary.EventName, props map[string]any) error {
	if props == nil {
		props = map[string]any{}
	}
	data, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to encode %s props: %w", event, err)
	}

	_, err = l.db.ExecContext(ctx,
		"INSERT INTO analytics_events (id, name, props, created_at) VALUES (?, ?, ?, ?)",
		"EVT-"+uuid.NewString(), string(event), string(data), l.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", event, err)
	}
	return nil
}

// List retrieves events matching the given filters, newest first.
func (l *EventLog) List(ctx context.Context, filters secondary.EventFilters) ([]*secondary.EventRecord, error) {
	query := "SELECT id, name, props, created_at FROM analytics_events WHERE 1=1"
	args := []any{}

	if filters.Name != "" {
		query += " AND name = ?"
		args = append(args, string(filters.Name))
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.EventRecord
	for rows.Next() {
		var (
			record    secondary.EventRecord
			name      string
			props     string
			createdAt time.Time
		)
		if err := rows.Scan(&record.ID, &name, &props, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		record.Name = secondary.EventName(name)
		if err := json.Unmarshal([]byte(props), &record.Props); err != nil {
			return nil, fmt.Errorf("failed to decode props of %s: %w", record.ID, err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		events = append(events, &record)
	}

	return events, rows.Err()
}

// Ensure EventLog implements the interface
var _ secondary.EventLog = (*EventLog)(nil)
