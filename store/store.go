package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("no saved data")

// Store persists a single opaque record, such as the serialized Q-table.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
