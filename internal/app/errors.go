package app

import (
	"errors"
	"fmt"
)

// ConfigLoadError reports an unreachable or malformed configuration document.
// It is fatal to the startup load and surfaces to the user.
type ConfigLoadError struct {
	Ref string
	Err error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("load schedule config %s: %v", e.Ref, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// SourceFetchError reports a single schedule document that could not be
// fetched or parsed. Non-fatal: skipped during bulk load, a no-op during a
// user-initiated switch.
type SourceFetchError struct {
	Ref string
	Err error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetch schedule %s: %v", e.Ref, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// ErrStaleSelection marks a SelectSource completion that was superseded by a
// newer selection before it finished. The result is discarded.
var ErrStaleSelection = errors.New("stale schedule selection")

// ErrUnknownSourceRef is returned for selections outside the loaded source list.
var ErrUnknownSourceRef = errors.New("unknown schedule source")
