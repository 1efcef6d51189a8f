package cursor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetOrCreateIsIdempotent(t *testing.T) {
	p := newFakePlatform()
	c := NewCache(p)

	h1, err := c.GetOrCreate()
	require.NoError(t, err)
	h2, err := c.GetOrCreate()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, p.cursorsCreated)
	assert.Equal(t, 0, p.liveBitmaps(), "mask bitmaps must be released after the composite exists")
	assert.True(t, c.Cached())
}

func TestCacheConcurrentGetOrCreate(t *testing.T) {
	p := newFakePlatform()
	c := NewCache(p)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrCreate()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, p.cursorsCreated)
}

func TestCacheRelease(t *testing.T) {
	p := newFakePlatform()
	c := NewCache(p)

	require.NoError(t, c.Release(), "release before create")

	_, err := c.GetOrCreate()
	require.NoError(t, err)
	require.NoError(t, c.Release())
	require.NoError(t, c.Release(), "second release")

	assert.False(t, c.Cached())
	assert.Equal(t, 0, p.liveCursors())
}

func TestCacheConstructionFailure(t *testing.T) {
	tests := []struct {
		name   string
		breakf func(p *fakePlatform)
	}{
		{"bitmap", func(p *fakePlatform) { p.failBitmap = true }},
		{"cursor", func(p *fakePlatform) { p.failCursor = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePlatform()
			tt.breakf(p)
			c := NewCache(p)

			_, err := c.GetOrCreate()
			require.ErrorIs(t, err, ErrResourceConstruction)
			assert.False(t, c.Cached())
			assert.Equal(t, 0, p.liveBitmaps())

			// retry succeeds once the platform cooperates
			p.failBitmap, p.failCursor = false, false
			h, err := c.GetOrCreate()
			require.NoError(t, err)
			assert.NotZero(t, h)
		})
	}
}
