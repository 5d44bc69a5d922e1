package prefs

import "context"

// Repository persists one preference record per user. Get returns
// (nil, nil) when the user has no record; absence is not an error.
type Repository interface {
	Get(ctx context.Context, userID string) (*Preference, error)
	Upsert(ctx context.Context, userID string, p Preference) error
	Delete(ctx context.Context, userID string) error
}
