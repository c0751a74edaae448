// Package highscore persists the best score across sessions. Backends are chosen
// by URL with Open; all of them satisfy rules.HighScoreStore.
package highscore

import (
	"context"
	"io"
	"sync"

	"github.com/battlesnakeio/classic/rules"
)

// Store is the interface to the backend store.
type Store = rules.HighScoreStore

// NewInMemStore returns an in memory implementation of the Store interface.
func NewInMemStore() Store {
	return &inmem{values: map[string]int{}}
}

type inmem struct {
	values map[string]int
	lock   sync.Mutex
}

func (in *inmem) Get(ctx context.Context, key string) (int, bool, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	v, ok := in.values[key]
	return v, ok, nil
}

func (in *inmem) Set(ctx context.Context, key string, value int) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	in.values[key] = value
	return nil
}

// Close releases the connections held by the store, if any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
