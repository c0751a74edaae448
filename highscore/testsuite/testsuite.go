// Package testsuite holds the conformance tests every high score backend must
// pass.
package testsuite

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/battlesnakeio/classic/rules"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreMissingKey(t *testing.T, s rules.HighScoreStore) {
	key := uuid.NewV4().String()

	v, ok, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, v)
}

func testStoreSetGet(t *testing.T, s rules.HighScoreStore) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, key, 42))
	v, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 42, v)

	// Zero is a stored value, not a missing one.
	require.NoError(t, s.Set(ctx, key, 0))
	v, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, v)
}

func testStoreOverwrite(t *testing.T, s rules.HighScoreStore) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	for _, score := range []int{3, 17, 9} {
		require.NoError(t, s.Set(ctx, key, score))
	}
	v, _, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, 9, v)
}

func testStoreKeyIsolation(t *testing.T, s rules.HighScoreStore) {
	a, b := uuid.NewV4().String(), uuid.NewV4().String()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, a, 1))
	require.NoError(t, s.Set(ctx, b, 2))

	v, _, err := s.Get(ctx, a)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	v, _, err = s.Get(ctx, b)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func testStoreConcurrentWriters(t *testing.T, s rules.HighScoreStore) {
	ctx := context.Background()
	prefix := uuid.NewV4().String()

	wg := &sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Set(ctx, fmt.Sprintf("%s-%d", prefix, i), i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		v, ok, err := s.Get(ctx, fmt.Sprintf("%s-%d", prefix, i))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

// Suite runs the conformance tests against s, calling pretest before each one.
func Suite(t *testing.T, s rules.HighScoreStore, pretest func()) {
	t.Run("MissingKey", func(t *testing.T) { pretest(); testStoreMissingKey(t, s) })
	t.Run("SetGet", func(t *testing.T) { pretest(); testStoreSetGet(t, s) })
	t.Run("Overwrite", func(t *testing.T) { pretest(); testStoreOverwrite(t, s) })
	t.Run("KeyIsolation", func(t *testing.T) { pretest(); testStoreKeyIsolation(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
