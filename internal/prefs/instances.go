package prefs

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/accessblock/internal/db"
)

// InstanceStore keeps per-block colour scheme overrides. A block instance
// may replace any of the configurable schemes (2..4); the rest fall back
// to the site catalogue.
type InstanceStore struct {
	db *db.DB
}

// NewInstanceStore creates an InstanceStore backed by the given database.
func NewInstanceStore(database *db.DB) *InstanceStore {
	return &InstanceStore{db: database}
}

// SetScheme stores an override for one scheme of an instance.
func (s *InstanceStore) SetScheme(ctx context.Context, instanceID string, scheme Scheme) error {
	if instanceID == "" {
		return &ValidationError{Field: "instance_id", Value: instanceID, Reason: "must not be empty"}
	}
	if err := ValidateScheme(scheme); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO instance_schemes (instance_id, scheme_id, foreground, background, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(instance_id, scheme_id) DO UPDATE SET
			foreground = excluded.foreground,
			background = excluded.background,
			updated_at = excluded.updated_at`,
		instanceID, scheme.ID, scheme.Foreground, scheme.Background,
	)
	if err != nil {
		return fmt.Errorf("saving instance scheme: %w", err)
	}
	return nil
}

// Schemes returns the overrides stored for an instance, ordered by id.
func (s *InstanceStore) Schemes(ctx context.Context, instanceID string) ([]Scheme, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT scheme_id, foreground, background FROM instance_schemes WHERE instance_id = ? ORDER BY scheme_id",
		instanceID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying instance schemes: %w", err)
	}
	defer rows.Close()

	var out []Scheme
	for rows.Next() {
		var sc Scheme
		if err := rows.Scan(&sc.ID, &sc.Foreground, &sc.Background); err != nil {
			return nil, fmt.Errorf("scanning instance scheme: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Catalogue returns base with the instance's overrides applied.
func (s *InstanceStore) Catalogue(ctx context.Context, instanceID string, base Catalogue) (Catalogue, error) {
	if instanceID == "" {
		return base, nil
	}
	overrides, err := s.Schemes(ctx, instanceID)
	if err != nil {
		return base, err
	}
	return base.With(overrides)
}
