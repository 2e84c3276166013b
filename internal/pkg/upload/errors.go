package upload

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAdapter    = errors.New("unknown transfer adapter")
	ErrEmptyDestination  = errors.New("destination is empty")
	ErrOutsideUploadRoot = errors.New("destination escapes the upload root")
	ErrNotDirectory      = errors.New("destination is not a directory")
	ErrNoDestination     = errors.New("no destination configured")
	ErrFieldCollision    = errors.New("form field collides with a multi-file member")
)

// PathError reports a destination that could not be resolved or created.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("upload destination %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// RenameError means a rename strategy failed or produced an unusable name.
// It points at a programming mistake, not at bad user input.
type RenameError struct {
	Original string
	Err      error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("renaming %q: %v", e.Original, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// ValidationError carries the user facing messages of every failed validator.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "upload validation failed: " + strings.Join(e.Messages, "; ")
}
