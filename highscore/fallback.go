package highscore

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Fallback wraps a store so that its failures never reach the game. The first
// failing call switches the session to an in memory copy: the last value written
// keeps being served until the process exits.
func Fallback(primary Store) Store {
	return &fallback{primary: primary, mem: NewInMemStore()}
}

type fallback struct {
	primary  Store
	mem      Store
	degraded bool
	lock     sync.Mutex
}

func (f *fallback) Get(ctx context.Context, key string) (int, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.degraded {
		v, ok, err := f.primary.Get(ctx, key)
		if err == nil {
			if ok {
				f.mem.Set(ctx, key, v)
			}
			return v, ok, nil
		}
		f.degrade(err, "Get", key)
	}
	return f.mem.Get(ctx, key)
}

func (f *fallback) Set(ctx context.Context, key string, value int) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.mem.Set(ctx, key, value)
	if f.degraded {
		return nil
	}
	if err := f.primary.Set(ctx, key, value); err != nil {
		f.degrade(err, "Set", key)
	}
	return nil
}

func (f *fallback) Close() error {
	return Close(f.primary)
}

func (f *fallback) degrade(err error, method, key string) {
	f.degraded = true
	log.WithError(err).WithFields(log.Fields{
		"Method": method,
		"Key":    key,
	}).Warn("high score store unavailable, keeping scores in memory")
}
