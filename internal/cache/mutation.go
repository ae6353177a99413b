package cache

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when a Mutation step is called out of
// order.
var ErrInvalidTransition = errors.New("invalid mutation transition")

type mutationState int

const (
	stateIdle mutationState = iota
	stateBegun
	stateApplied
	stateCommitted
	stateReverted
)

func (s mutationState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateBegun:
		return "begun"
	case stateApplied:
		return "applied"
	case stateCommitted:
		return "committed"
	case stateReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Mutation is one optimistic update of a cache entry. The lifecycle is
// Begin, Apply, then exactly one of Commit or Revert. A Mutation is not
// reusable and not safe for concurrent use.
type Mutation[T any] struct {
	ID    string
	cache *Cache
	key   Key

	state    mutationState
	snapshot T
	existed  bool
}

// NewMutation prepares an optimistic update of key.
func NewMutation[T any](c *Cache, key Key) *Mutation[T] {
	return &Mutation[T]{ID: uuid.NewString(), cache: c, key: key}
}

// Begin snapshots the current entry and returns it so the caller can
// derive the optimistic value.
func (m *Mutation[T]) Begin() (T, error) {
	if m.state != stateIdle {
		var zero T
		return zero, m.invalid("begin")
	}
	m.snapshot, m.existed = Lookup[T](m.cache, m.key)
	m.state = stateBegun
	return m.snapshot, nil
}

// Apply installs the optimistic value.
func (m *Mutation[T]) Apply(v T) error {
	if m.state != stateBegun {
		return m.invalid("apply")
	}
	m.cache.Set(m.key, v)
	m.state = stateApplied
	return nil
}

// Commit keeps the optimistic value.
func (m *Mutation[T]) Commit() error {
	if m.state != stateApplied {
		return m.invalid("commit")
	}
	m.state = stateCommitted
	return nil
}

// Revert restores the snapshot, or removes the entry if there was none.
func (m *Mutation[T]) Revert() error {
	if m.state != stateApplied {
		return m.invalid("revert")
	}
	if m.existed {
		m.cache.Set(m.key, m.snapshot)
	} else {
		m.cache.Invalidate(m.key)
	}
	m.state = stateReverted
	return nil
}

func (m *Mutation[T]) invalid(step string) error {
	return fmt.Errorf("%s on %s mutation of %s: %w", step, m.state, m.key, ErrInvalidTransition)
}
