package cursor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrResourceConstruction means the platform refused to build the
	// transparent pointer. The cache stays empty; the next Hide retries.
	ErrResourceConstruction = errors.New("transparent pointer construction failed")

	// ErrApply means one or more pointer roles could not be installed or
	// reverted.
	ErrApply = errors.New("pointer apply failed")
)

// ApplyError reports which roles failed during Op ("hide" or "show").
type ApplyError struct {
	Op    string
	Roles []Role
	Err   error
}

func (e *ApplyError) Error() string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = r.String()
	}
	return fmt.Sprintf("%s: %s [%s]: %v", ErrApply, e.Op, strings.Join(names, ","), e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

func (e *ApplyError) Is(target error) bool { return target == ErrApply }
