package cursor

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Cache owns the single synthesized transparent pointer.
type Cache struct {
	platform Platform

	mu     sync.Mutex
	handle Handle
}

func NewCache(p Platform) *Cache {
	return &Cache{platform: p}
}

// GetOrCreate returns the cached pointer, building it on first use.
func (c *Cache) GetOrCreate() (Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != 0 {
		return c.handle, nil
	}

	h, err := c.build()
	if err != nil {
		return 0, err
	}
	c.handle = h
	log.Debug().Uint64("handle", uint64(h)).Msg("transparent pointer created")
	return h, nil
}

func (c *Cache) build() (Handle, error) {
	img := Transparent()

	mask, err := c.platform.CreateBitmap(Size, Size, 1, 1, img.AndMask)
	if err != nil {
		return 0, fmt.Errorf("%w: mask bitmap: %v", ErrResourceConstruction, err)
	}
	defer c.deleteBitmap(mask)

	color, err := c.platform.CreateBitmap(Size, Size, 1, 32, img.XorMask)
	if err != nil {
		return 0, fmt.Errorf("%w: color bitmap: %v", ErrResourceConstruction, err)
	}
	defer c.deleteBitmap(color)

	h, err := c.platform.CreateCursor(IconInfo{
		Icon:     img.Icon,
		HotspotX: img.HotspotX,
		HotspotY: img.HotspotY,
		Mask:     mask,
		Color:    color,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrResourceConstruction, err)
	}
	return h, nil
}

// The composite keeps its own copy of the planes.
func (c *Cache) deleteBitmap(h Handle) {
	if err := c.platform.DeleteBitmap(h); err != nil {
		log.Warn().Err(err).Uint64("handle", uint64(h)).Msg("delete mask bitmap")
	}
}

// Release destroys the cached pointer if there is one.
func (c *Cache) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == 0 {
		return nil
	}
	h := c.handle
	c.handle = 0
	if err := c.platform.DestroyCursor(h); err != nil {
		return fmt.Errorf("destroy transparent pointer: %w", err)
	}
	log.Debug().Uint64("handle", uint64(h)).Msg("transparent pointer released")
	return nil
}

// Cached reports whether a pointer is currently held.
func (c *Cache) Cached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != 0
}
