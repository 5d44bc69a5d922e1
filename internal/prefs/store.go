package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/accessblock/internal/db"
)

// Store is the SQLite Repository.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Get returns the saved preference for userID, or nil if none exists.
func (s *Store) Get(ctx context.Context, userID string) (*Preference, error) {
	var fontStep, scheme sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT font_step, colour_scheme FROM user_preferences WHERE user_id = ?", userID,
	).Scan(&fontStep, &scheme)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying preference: %w", err)
	}

	return &Preference{
		FontStep:     fromNull(fontStep),
		ColourScheme: fromNull(scheme),
	}, nil
}

// Upsert creates or replaces the record for userID.
func (s *Store) Upsert(ctx context.Context, userID string, p Preference) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, font_step, colour_scheme, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(user_id) DO UPDATE SET
			font_step = excluded.font_step,
			colour_scheme = excluded.colour_scheme,
			updated_at = excluded.updated_at`,
		userID, toNull(p.FontStep), toNull(p.ColourScheme),
	)
	if err != nil {
		return fmt.Errorf("upserting preference: %w", err)
	}
	return nil
}

// Delete removes the record for userID. Deleting a missing record is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM user_preferences WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("deleting preference: %w", err)
	}
	return nil
}

func toNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return intPtr(int(v.Int64))
}
