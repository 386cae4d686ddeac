// Package snapshots stores the latest form snapshot per user so a draft
// survives across devices. The document is opaque JSON: the server checks
// size and well-formedness, nothing else.
package snapshots

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cvpro/internal/common"
)

type Service struct {
	store    Store
	maxBytes int64
}

func NewService(store Store, maxBytes int64) *Service {
	return &Service{store: store, maxBytes: maxBytes}
}

// Save validates and persists body as the user's snapshot. Oversized bodies
// yield common.ErrorSnapshotTooBig, malformed JSON common.ErrorValidation.
func (s *Service) Save(ctx context.Context, userID string, body []byte) error {
	if int64(len(body)) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", common.ErrorSnapshotTooBig, len(body), s.maxBytes)
	}
	if !json.Valid(body) {
		return common.ErrorValidation
	}
	return s.store.Save(ctx, userID, body)
}

// Load returns the stored snapshot. A stored document that is no longer
// valid JSON yields common.ErrorSnapshotCorrupt; no snapshot at all yields
// common.ErrorNotFound.
func (s *Service) Load(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, common.ErrorSnapshotCorrupt
	}
	return data, nil
}
