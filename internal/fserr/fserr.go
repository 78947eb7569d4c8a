// Package fserr classifies the two recoverable filesystem error kinds
// spec.md §7 distinguishes — access denied and a missing path — and
// renders the matching "# "-prefixed diagnostic line, so every call site
// that hits one of these errors (directory enumeration, a subdirectory
// stat, a file stat, or resolving a root) logs the same taxonomy the same
// way.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind distinguishes the two recoverable error classes from spec.md §7.
// KindOther means err is not one of them and should be treated as fatal.
type Kind int

const (
	KindOther Kind = iota
	KindAccessDenied
	KindMissing
)

// Classify maps err onto a Kind via errors.Is against the stdlib's
// portable fs.ErrPermission/fs.ErrNotExist sentinels (EACCES/ENOENT on
// unix).
func Classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return KindAccessDenied
	case errors.Is(err, fs.ErrNotExist):
		return KindMissing
	default:
		return KindOther
	}
}

// Recoverable reports whether err is EACCES or ENOENT.
func Recoverable(err error) bool {
	return Classify(err) != KindOther
}

// Message renders the spec.md §7 diagnostic line for path given the error
// that triggered it, or "" if err isn't one of the two recoverable kinds.
func Message(path string, err error) string {
	switch Classify(err) {
	case KindAccessDenied:
		return fmt.Sprintf("# access denied to directory %s", path)
	case KindMissing:
		return fmt.Sprintf("# could not access dir,file or file in dir %s", path)
	default:
		return ""
	}
}
