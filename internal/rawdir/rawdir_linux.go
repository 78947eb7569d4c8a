//go:build linux

package rawdir

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/sys/unix"

	"dumon/internal/job"
)

// bufSize is the getdents64(2) scratch buffer size. Large enough that most
// directories drain in one or two syscalls.
const bufSize = 64 * 1024

// linux_dirent64 header layout (see linux/dirent.h):
//
//	u64 d_ino;
//	s64 d_off;
//	u16 d_reclen;
//	u8  d_type;
//	char d_name[];
const direntHeaderLen = 19 // 8 + 8 + 2 + 1

// Enumerate opens path and reads its entries directly via getdents64,
// classifying each by its d_type byte instead of calling lstat. Entries
// whose type the kernel didn't report (DT_UNKNOWN, or a filesystem that
// never fills d_type) are yielded with job.KindUnknown; the caller is
// responsible for resolving that case with a stat.
func Enumerate(path string, visit VisitFunc) error {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	buf := make([]byte, bufSize)
	for {
		n, err := unix.Getdents(fd, buf)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		off := 0
		for off < n {
			entry, reclen, ok := parseDirent(buf[off:n])
			if !ok {
				break
			}
			off += reclen

			if entry.Name == "." || entry.Name == ".." {
				continue
			}
			if err := visit(entry); err != nil {
				return err
			}
		}
	}
}

// parseDirent extracts one job.Entry from the front of a getdents64
// buffer, returning the record's on-disk length so the caller can advance.
// ok is false when the buffer doesn't hold a full record.
func parseDirent(buf []byte) (entry job.Entry, reclen int, ok bool) {
	if len(buf) < direntHeaderLen {
		return job.Entry{}, 0, false
	}

	reclen = int(binary.LittleEndian.Uint16(buf[16:18]))
	if reclen <= 0 || reclen > len(buf) {
		return job.Entry{}, 0, false
	}
	dtype := buf[18]

	name := buf[direntHeaderLen:reclen]
	if idx := bytes.IndexByte(name, 0); idx >= 0 {
		name = name[:idx]
	}

	return job.Entry{Name: string(name), Kind: kindFromDType(dtype)}, reclen, true
}

// kindFromDType maps the getdents d_type byte to job.Kind. DT_DIR is 4 on
// Linux.
func kindFromDType(dtype uint8) job.Kind {
	switch dtype {
	case unix.DT_DIR:
		return job.KindDir
	case unix.DT_REG:
		return job.KindFile
	case unix.DT_UNKNOWN:
		return job.KindUnknown
	default:
		return job.KindOther
	}
}
