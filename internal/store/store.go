// Package store is the keyed persistence boundary of the engine. Every
// component above it only needs get/put/delete/list-by-prefix semantics; the
// engine borrows a Store, it never owns its lifecycle.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence abstraction shared by all ledgers. Values are
// opaque byte slices; callers marshal their own JSON. No implementation
// offers transactional multi-key writes — logical operations must tolerate
// being re-run from scratch.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ListKeysByPrefix(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// GetJSON reads key and unmarshals it into dest.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// PutJSON marshals value and writes it under key.
func PutJSON(ctx context.Context, s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, data)
}
