package memo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeCaches(t *testing.T) {
	cache := New[int64, bool]()

	var calls int
	fn := func(n int64) bool {
		calls++
		return n%2 == 0
	}

	// Call multiple times.
	for range 10 {
		require.True(t, cache.Compute(4, fn))
		require.False(t, cache.Compute(5, fn))
	}
	require.Equal(t, 2, calls)
	require.Equal(t, 2, cache.Len())
}

func TestLoadStore(t *testing.T) {
	cache := New[int64, string]()

	_, ok := cache.Load(7)
	require.False(t, ok)

	cache.Store(7, "prime")
	v, ok := cache.Load(7)
	require.True(t, ok)
	require.Equal(t, "prime", v)

	cache.Store(7, "still prime")
	v, _ = cache.Load(7)
	require.Equal(t, "still prime", v)
	require.Equal(t, 1, cache.Len())
}

func TestIndependentCaches(t *testing.T) {
	cache1 := New[int64, int64]()
	cache2 := New[int64, int64]()

	cache1.Store(1, 10)
	_, ok := cache2.Load(1)
	require.False(t, ok)
}

func TestConcurrentCompute(t *testing.T) {
	cache := New[int64, int64]()
	var calls, wrong atomic.Int64

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range int64(100) {
				got := cache.Compute(i, func(k int64) int64 {
					calls.Add(1)
					return k * k
				})
				if got != i*i {
					wrong.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	require.Zero(t, wrong.Load())
	require.Equal(t, 100, cache.Len())
	require.GreaterOrEqual(t, calls.Load(), int64(100))
}
