package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/accessblock/internal/db"
)

const timeLayout = "2006-01-02 15:04:05.000"

// DefaultLimit caps List when no limit is given.
const DefaultLimit = 50

// Store persists history entries in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a new entry. An empty ID gets a UUID and a zero
// Timestamp is set to now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preference_history (id, user_id, op, previous, current, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, string(e.Op), e.Previous, e.Current, e.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// RecordChange adapts Record to the preference controller's recorder hook.
func (s *Store) RecordChange(ctx context.Context, userID, op, previous, current string) error {
	return s.Record(ctx, Entry{UserID: userID, Op: Op(op), Previous: previous, Current: current})
}

// List returns the newest entries for userID first.
func (s *Store) List(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, op, previous, current, timestamp
		FROM preference_history
		WHERE user_id = ?
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			op string
			ts string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &op, &e.Previous, &e.Current, &ts); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Op = Op(op)
		e.Timestamp = parseTime(ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes entries older than before and returns how many
// were removed.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM preference_history WHERE timestamp < ?",
		before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old history entries: %w", err)
	}
	return res.RowsAffected()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
