// Package fault classifies failed read attempts into a closed set of kinds.
package fault

import (
	"errors"
	"io/fs"
)

// Kind is the category of a failed read
type Kind int

const (
	NotFound Kind = iota + 1
	PermissionDenied
	IOFailure
)

// String returns the name written to the console and the error log
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case PermissionDenied:
		return "PermissionDenied"
	case IOFailure:
		return "IOFailure"
	default:
		return "Unknown"
	}
}

// Phase is the point of a read attempt at which it failed
type Phase int

const (
	// PhaseOpen means the file could not be opened
	PhaseOpen Phase = iota
	// PhaseRead means the file was opened but reading it failed
	PhaseRead
)

func (p Phase) String() string {
	if p == PhaseRead {
		return "read"
	}
	return "open"
}

// Error is a classified read failure
type Error struct {
	Kind  Kind
	Phase Phase
	Path  string
	Err   error // underlying cause
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Phase.String() + " " + e.Path
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail returns the one-line underlying error message
func (e *Error) Detail() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

// Guidance returns the remediation text shown for this kind
func (e *Error) Guidance() []string {
	return Guidance(e.Kind)
}

// Classify wraps err as a classified failure for path.
// Nil stays nil and an existing *Error is returned unchanged.
func Classify(path string, phase Phase, err error) *Error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	kind := IOFailure
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = NotFound
	case errors.Is(err, fs.ErrPermission):
		kind = PermissionDenied
	}

	return &Error{Kind: kind, Phase: phase, Path: path, Err: err}
}

// KindOf returns the kind of a classified error, or 0 when err is not one
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// Guidance returns remediation text for a kind
func Guidance(k Kind) []string {
	switch k {
	case NotFound:
		return []string{
			"Please ensure the file exists and the path is correct.",
			"Check whether the file was moved or deleted.",
		}
	case PermissionDenied:
		return []string{
			"Please check file permissions and user access rights.",
			"Ask the hospital IT department to grant read access if needed.",
		}
	case IOFailure:
		return []string{
			"This could be due to:",
			"- Disk read errors",
			"- File corruption or an unsupported text encoding",
			"- The path naming a directory instead of a file",
			"- Network connectivity problems (if the file is on a network drive)",
		}
	default:
		return nil
	}
}
