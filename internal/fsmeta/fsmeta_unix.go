//go:build unix

package fsmeta

import (
	"os"

	"golang.org/x/sys/unix"

	"dumon/internal/job"
)

// Lstat stats path without following symlinks and maps the result onto
// job.Meta.
func Lstat(path string) (job.Meta, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return job.Meta{}, err
	}
	return job.Meta{
		Size:  st.Size,
		UID:   st.Uid,
		Inode: uint64(st.Ino),
		Nlink: uint32(st.Nlink),
		Mode:  modeFromRaw(uint32(st.Mode)),
	}, nil
}

// modeFromRaw maps the raw st_mode bits onto an os.FileMode. Only the type
// bits matter to callers (they only ask Mode.IsDir()), but the permission
// bits are carried along too since they're free.
func modeFromRaw(raw uint32) os.FileMode {
	m := os.FileMode(raw & 0o777)
	switch raw & unix.S_IFMT {
	case unix.S_IFDIR:
		m |= os.ModeDir
	case unix.S_IFLNK:
		m |= os.ModeSymlink
	case unix.S_IFCHR:
		m |= os.ModeCharDevice
	case unix.S_IFBLK:
		m |= os.ModeDevice
	case unix.S_IFIFO:
		m |= os.ModeNamedPipe
	case unix.S_IFSOCK:
		m |= os.ModeSocket
	}
	return m
}
