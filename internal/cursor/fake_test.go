package cursor

import (
	"errors"
	"sync"
)

// fakePlatform tracks live native objects so tests can check ownership.
type fakePlatform struct {
	mu sync.Mutex

	next     Handle
	bitmaps  map[Handle]bool
	cursors  map[Handle]bool
	installs map[Role]Handle

	cursorsCreated int
	reloads        int

	failBitmap  bool
	failCursor  bool
	failCopy    bool
	failInstall map[Role]bool
	failReload  bool
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		next:        100,
		bitmaps:     map[Handle]bool{},
		cursors:     map[Handle]bool{},
		installs:    map[Role]Handle{},
		failInstall: map[Role]bool{},
	}
}

func (f *fakePlatform) alloc() Handle {
	f.next++
	return f.next
}

func (f *fakePlatform) CreateBitmap(width, height int, planes, bitsPerPixel uint32, bits []byte) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBitmap {
		return 0, errors.New("CreateBitmap refused")
	}
	h := f.alloc()
	f.bitmaps[h] = true
	return h, nil
}

func (f *fakePlatform) DeleteBitmap(h Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.bitmaps[h] {
		return errors.New("unknown bitmap")
	}
	delete(f.bitmaps, h)
	return nil
}

func (f *fakePlatform) CreateCursor(info IconInfo) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCursor {
		return 0, errors.New("CreateIconIndirect refused")
	}
	if !f.bitmaps[info.Mask] || !f.bitmaps[info.Color] {
		return 0, errors.New("invalid planes")
	}
	h := f.alloc()
	f.cursors[h] = true
	f.cursorsCreated++
	return h, nil
}

func (f *fakePlatform) CopyCursor(h Handle) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCopy {
		return 0, errors.New("CopyIcon refused")
	}
	if !f.cursors[h] {
		return 0, errors.New("copy of freed cursor")
	}
	d := f.alloc()
	f.cursors[d] = true
	return d, nil
}

func (f *fakePlatform) DestroyCursor(h Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.cursors[h] {
		return errors.New("double destroy")
	}
	delete(f.cursors, h)
	return nil
}

// SetSystemCursor consumes h on success, like the real call.
func (f *fakePlatform) SetSystemCursor(h Handle, role Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInstall[role] {
		return errors.New("SetSystemCursor refused")
	}
	if !f.cursors[h] {
		return errors.New("install of freed cursor")
	}
	delete(f.cursors, h)
	f.installs[role] = h
	return nil
}

func (f *fakePlatform) ReloadSystemCursors() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReload {
		return errors.New("SystemParametersInfo refused")
	}
	f.reloads++
	f.installs = map[Role]Handle{}
	return nil
}

func (f *fakePlatform) hidden(role Role) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.installs[role]
	return ok
}

func (f *fakePlatform) liveCursors() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cursors)
}

func (f *fakePlatform) liveBitmaps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bitmaps)
}
