package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"dumon/internal/humanize"
	"dumon/internal/tree"
	"dumon/internal/userdb"
)

// WriteTable renders rows as a go-pretty table instead of the default
// fixed-width lines, with locale-grouped file counts (and uids, when no
// userdb.DB is given); sizes go through humanize.Bytes. This is the
// optional --output-format table path; it never touches the %15s
// templates Writer uses for the default output.
func WriteTable(w io.Writer, rows []tree.Row, userRows []tree.UserRow, human bool, users *userdb.DB) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	if len(userRows) > 0 {
		t.AppendHeader(table.Row{"user", "files", "size", "path"})
		for _, r := range userRows {
			name := fmtUID(r.UID, users)
			t.AppendRow(table.Row{name, humanize.Grouped(int64(r.Count)), humanize.Bytes(int64(r.Size), human), r.Path})
		}
		t.Render()
		return
	}

	t.AppendHeader(table.Row{"files", "size", "path"})
	for _, r := range rows {
		t.AppendRow(table.Row{humanize.Grouped(int64(r.Count)), humanize.Bytes(int64(r.Size), human), r.Path})
	}
	t.Render()
}

func fmtUID(uid uint32, users *userdb.DB) string {
	if users == nil {
		return humanize.Grouped(int64(uid))
	}
	return users.Lookup(uid)
}
