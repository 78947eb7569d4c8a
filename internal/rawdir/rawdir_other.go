//go:build !linux

package rawdir

import (
	"errors"
	"io"
	"os"

	"dumon/internal/job"
)

// Enumerate falls back to os.ReadDir on platforms without a getdents-style
// syscall wired up. DirEntry.Type() is derived from the directory read
// itself (no per-entry stat), but most non-Linux filesystems don't expose
// enough to distinguish file/dir without the Mode bits os.ReadDir already
// resolved for us. An entry with no type bits is reported as KindUnknown
// so the counter falls back to lstat, exactly as it would for a Linux
// filesystem with no d_type; any other non-directory, non-regular type
// (symlink, device, pipe, socket) is reported as KindOther.
func Enumerate(path string, visit VisitFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		entries, err := f.ReadDir(256)
		for _, de := range entries {
			name := de.Name()
			if name == "." || name == ".." {
				continue
			}
			if verr := visit(job.Entry{Name: name, Kind: kindFromType(de.Type())}); verr != nil {
				return verr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func kindFromType(m os.FileMode) job.Kind {
	switch {
	case m.IsDir():
		return job.KindDir
	case m.IsRegular():
		return job.KindFile
	case m == 0:
		return job.KindUnknown
	default:
		return job.KindOther
	}
}
