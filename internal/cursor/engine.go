package cursor

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/tevino/abool"
)

// Engine applies and reverts the transparent pointer on every managed role.
// It keeps no visibility state of its own.
type Engine struct {
	platform Platform
	cache    *Cache
	ready    *abool.AtomicBool
}

func NewEngine(p Platform) *Engine {
	return &Engine{
		platform: p,
		cache:    NewCache(p),
		ready:    abool.New(),
	}
}

// Initialize marks the engine ready. Safe to call any number of times.
func (e *Engine) Initialize() {
	if e.ready.SetToIf(false, true) {
		log.Debug().Msg("cursor engine ready")
	}
}

func (e *Engine) Ready() bool { return e.ready.IsSet() }

// Hide installs a duplicate of the cached transparent pointer on each role.
//
// SetSystemCursor destroys the handle it receives, so every role gets its
// own copy. All roles are attempted even if one fails.
func (e *Engine) Hide() error {
	e.Initialize()

	h, err := e.cache.GetOrCreate()
	if err != nil {
		return err
	}

	var (
		failed []Role
		errs   *multierror.Error
	)
	for _, role := range ManagedRoles {
		if err := e.install(h, role); err != nil {
			failed = append(failed, role)
			errs = multierror.Append(errs, err)
		}
	}
	if len(failed) > 0 {
		return &ApplyError{Op: "hide", Roles: failed, Err: errs.ErrorOrNil()}
	}
	return nil
}

func (e *Engine) install(h Handle, role Role) error {
	dup, err := e.platform.CopyCursor(h)
	if err != nil {
		return fmt.Errorf("copy pointer for %s: %w", role, err)
	}
	if err := e.platform.SetSystemCursor(dup, role); err != nil {
		// ownership did not transfer
		if derr := e.platform.DestroyCursor(dup); derr != nil {
			log.Warn().Err(derr).Stringer("role", role).Msg("destroy unused pointer copy")
		}
		return fmt.Errorf("install pointer for %s: %w", role, err)
	}
	return nil
}

// Show reloads the user's configured pointer scheme for every role.
// Previously captured handles are never reinstalled; they go stale across
// theme and display changes.
func (e *Engine) Show() error {
	e.Initialize()

	if err := e.platform.ReloadSystemCursors(); err != nil {
		return &ApplyError{
			Op:    "show",
			Roles: append([]Role(nil), ManagedRoles[:]...),
			Err:   err,
		}
	}
	return nil
}

// Cleanup releases the cached pointer. A later Hide recreates it.
func (e *Engine) Cleanup() error {
	return e.cache.Release()
}
