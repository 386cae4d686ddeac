package snapshots

import "context"

// Store persists the raw snapshot document (one per user, last write wins).
type Store interface {
	Save(ctx context.Context, userID string, data []byte) error
	Load(ctx context.Context, userID string) ([]byte, error)
}
