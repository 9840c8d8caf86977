package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedDoodle struct {
	ID     uint   `json:"id"`
	Prompt string `json:"prompt"`
}

// useTestRedis swaps the package client for a miniredis-backed one and
// restores the previous client when the test ends.
func useTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	prev := GetClient()
	SetClient(c)
	t.Cleanup(func() {
		SetClient(prev)
		_ = c.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	useTestRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedDoodle) func() error {
		return func() error {
			calls++
			dest.ID = 7
			dest.Prompt = "A paper boat"
			return nil
		}
	}

	var first cachedDoodle
	require.NoError(t, Aside(ctx, DoodleKey(7), &first, DoodleTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "A paper boat", first.Prompt)

	// Second read is served from the cache.
	var second cachedDoodle
	require.NoError(t, Aside(ctx, DoodleKey(7), &second, DoodleTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	useTestRedis(t)

	fetchErr := errors.New("db down")
	var dest cachedDoodle
	err := Aside(context.Background(), DoodleKey(1), &dest, time.Minute, func() error {
		return fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
}

func TestAside_NilClientDegradesToLoader(t *testing.T) {
	prev := GetClient()
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })

	calls := 0
	var dest cachedDoodle
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), DoodleKey(2), &dest, time.Minute, func() error {
			calls++
			dest.ID = 2
			return nil
		}))
	}
	assert.Equal(t, 2, calls, "without Redis every read goes to the loader")
}

func TestInvalidateDoodle(t *testing.T) {
	useTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, DoodleKey(3), cachedDoodle{ID: 3}, time.Minute))

	var dest cachedDoodle
	found, err := GetJSON(ctx, DoodleKey(3), &dest)
	require.NoError(t, err)
	require.True(t, found)

	InvalidateDoodle(ctx, 3)

	found, err = GetJSON(ctx, DoodleKey(3), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisErrorTreatedAsMiss(t *testing.T) {
	mr := useTestRedis(t)
	ctx := context.Background()

	// Corrupt cached payload: loader must win.
	require.NoError(t, mr.Set(DoodleKey(4), "{not json"))

	calls := 0
	var dest cachedDoodle
	require.NoError(t, Aside(ctx, DoodleKey(4), &dest, time.Minute, func() error {
		calls++
		dest.ID = 4
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint(4), dest.ID)
}
