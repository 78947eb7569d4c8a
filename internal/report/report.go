// Package report renders tree.Row / tree.UserRow values to an output
// stream, either as the two fixed-width templates or, optionally, as a
// go-pretty table. Grounded on pkg/output/formatter.go's Formatter, but
// restructured around the two templates plain text output requires
// instead of formatter.go's richer per-year/per-uid table surface.
package report

import (
	"fmt"
	"io"

	"dumon/internal/humanize"
	"dumon/internal/tree"
	"dumon/internal/userdb"
)

const (
	lineTemplate     = "%15s %15s %s\n"
	userLineTemplate = "%15s %15s %15s %s\n"
)

// Writer renders rows to an underlying stream using the fixed-width
// templates.
type Writer struct {
	w     io.Writer
	human bool
	users *userdb.DB
}

// New builds a Writer. users may be nil when UserMode is never used.
func New(w io.Writer, human bool, users *userdb.DB) *Writer {
	return &Writer{w: w, human: human, users: users}
}

// Header writes the column header line for the given mode, unless the
// caller has suppressed it (--quiet).
func (rw *Writer) Header(userMode bool) {
	if userMode {
		fmt.Fprintf(rw.w, userLineTemplate, "user", "files", "size", "path")
		return
	}
	fmt.Fprintf(rw.w, lineTemplate, "files", "size", "path")
}

// WriteRow renders one aggregate row.
func (rw *Writer) WriteRow(r tree.Row) {
	fmt.Fprintf(rw.w, lineTemplate,
		fmt.Sprint(r.Count),
		humanize.Bytes(int64(r.Size), rw.human),
		r.Path,
	)
}

// WriteUserRow renders one per-uid row, resolving the uid to a username
// when a userdb.DB is available.
func (rw *Writer) WriteUserRow(r tree.UserRow) {
	name := fmt.Sprint(r.UID)
	if rw.users != nil {
		name = rw.users.Lookup(r.UID)
	}
	fmt.Fprintf(rw.w, userLineTemplate,
		name,
		fmt.Sprint(r.Count),
		humanize.Bytes(int64(r.Size), rw.human),
		r.Path,
	)
}
