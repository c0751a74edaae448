package highscore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/battlesnakeio/classic/highscore/filestore"
	"github.com/battlesnakeio/classic/highscore/sqlstore"
	"github.com/battlesnakeio/classic/highscore/testsuite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestInMemStore(t *testing.T) {
	testsuite.Suite(t, NewInMemStore(), func() {})
}

func TestInstrumentedStore(t *testing.T) {
	testsuite.Suite(t, InstrumentStore(NewInMemStore()), func() {})
}

func TestFallbackStore(t *testing.T) {
	testsuite.Suite(t, Fallback(NewInMemStore()), func() {})
}

type brokenStore struct {
	gets, sets int
}

func (b *brokenStore) Get(ctx context.Context, key string) (int, bool, error) {
	b.gets++
	return 0, false, errors.New("connection refused")
}

func (b *brokenStore) Set(ctx context.Context, key string, value int) error {
	b.sets++
	return errors.New("connection refused")
}

func TestFallbackKeepsSessionValue(t *testing.T) {
	ctx := context.Background()
	primary := &brokenStore{}
	s := Fallback(primary)

	v, ok, err := s.Get(ctx, "highScore")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, v)

	require.NoError(t, s.Set(ctx, "highScore", 14))
	v, ok, err = s.Get(ctx, "highScore")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 14, v)

	// once degraded the primary is left alone
	require.Equal(t, 1, primary.gets)
	require.Equal(t, 0, primary.sets)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, "")
	require.NoError(t, err)
	require.IsType(t, &inmem{}, s)

	s, err = Open(ctx, "memory://")
	require.NoError(t, err)
	require.IsType(t, &inmem{}, s)

	s, err = Open(ctx, filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	require.IsType(t, &filestore.FileStore{}, s)

	s, err = Open(ctx, "file://"+filepath.Join(dir, "b.json"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "b.json"), s.(*filestore.FileStore).Path())

	s, err = Open(ctx, "sqlite://"+filepath.Join(dir, "c.db"))
	require.NoError(t, err)
	require.IsType(t, &sqlstore.Store{}, s)
	require.NoError(t, s.Set(ctx, "highScore", 5))
	require.NoError(t, Close(s))

	_, err = Open(ctx, "mongodb://localhost")
	require.Error(t, err)
	require.Equal(t, ErrUnsupportedScheme, errors.Cause(err))
}

func TestCloseWithoutCloser(t *testing.T) {
	require.NoError(t, Close(NewInMemStore()))
	require.NoError(t, Close(InstrumentStore(NewInMemStore())))
}
