package core

import (
	"errors"
	"fmt"
)

// ErrNoRecords means an extraction run finished without producing a single
// record, which makes the whole run unusable.
var ErrNoRecords = errors.New("no frame records produced")

// InputError marks a bad user-supplied reference (URL or path).
type InputError struct {
	Ref string
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("invalid input %q: %v", e.Ref, e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// IOError wraps a failed external operation (ffmpeg, yt-dlp, filesystem).
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// CaptionUnavailable reports that no captions could be obtained for a
// language. Callers treat it as a degradation, not a failure.
type CaptionUnavailable struct {
	Lang string
}

func (e *CaptionUnavailable) Error() string {
	return fmt.Sprintf("no captions available for language %q", e.Lang)
}

// PersistenceError wraps a failure to write an artifact to disk or a store.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persist %s: %v", e.Path, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }
