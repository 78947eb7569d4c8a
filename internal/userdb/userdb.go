// Package userdb resolves uids to usernames for the --user output mode.
//
// Grounded on pkg/stat/walker.go's lookupUsername, but restructured: the
// whole table is populated once before any worker starts and handed out
// as a read-only map, instead of a lazy per-lookup cache guarded by a
// mutex, so no synchronization is needed on the hot path.
package userdb

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// DB is an immutable uid -> username mapping, safe for unsynchronized
// concurrent reads once built.
type DB struct {
	names map[uint32]string
}

// Build reads /etc/passwd and returns a DB mapping every uid it finds to
// its login name. Unreadable or malformed lines are skipped; a missing
// /etc/passwd (non-Linux, or a sandboxed environment) yields an empty DB,
// and Lookup falls back to a numeric rendering for every uid.
func Build() *DB {
	db := &DB{names: make(map[uint32]string)}

	f, err := os.Open("/etc/passwd")
	if err != nil {
		return db
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		uid, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			continue
		}
		db.names[uint32(uid)] = fields[0]
	}
	return db
}

// Lookup returns the username for uid, or "uid:N" if the database has no
// entry for it.
func (db *DB) Lookup(uid uint32) string {
	if name, ok := db.names[uid]; ok {
		return name
	}
	return "uid:" + strconv.FormatUint(uint64(uid), 10)
}
