package persistence

import (
	"errors"
	"fmt"
)

// DefaultKey is the storage key holding the collection.
const DefaultKey = "multi-stopwatches-v1"

// Persistence errors.
var (
	ErrInvalidKey = errors.New("invalid storage key")
	ErrClosed     = errors.New("store closed")

	// ErrRead marks a Load that could not reach the stored payload, as
	// opposed to one that found a corrupt payload.
	ErrRead = errors.New("storage read failed")
)

// KV is durable string storage keyed by name.
type KV interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Close releases the backend.
	Close() error
}

// Store saves and loads snapshots under a single key.
type Store struct {
	kv  KV
	key string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore creates a store on top of kv.
func NewStore(kv KV, opts ...StoreOption) *Store {
	s := &Store{kv: kv, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Save writes the snapshot. Errors are returned for logging only.
func (s *Store) Save(snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Load reads the snapshot. The returned snapshot is always usable; a non-nil
// error explains why it is empty. Read failures wrap ErrRead; a corrupt
// payload does not. An absent key yields an empty snapshot and no error.
func (s *Store) Load() (Snapshot, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s: %w", ErrRead, s.key, err)
	}
	if !ok || raw == "" {
		return Snapshot{}, nil
	}

	snap, err := Decode([]byte(raw))
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return snap, nil
}

// Close closes the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}
