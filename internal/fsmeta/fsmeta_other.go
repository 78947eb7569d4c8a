//go:build !unix

package fsmeta

import (
	"os"

	"dumon/internal/job"
)

// Lstat falls back to the standard library on platforms with no uid/inode
// concept wired up (e.g. Windows). Ownership and hard-link dedup degrade
// gracefully: every file reports uid 0 and nlink 1, so every byte is
// charged exactly once and all files land in a single uid bucket.
func Lstat(path string) (job.Meta, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return job.Meta{}, err
	}
	return job.Meta{
		Size:  fi.Size(),
		UID:   0,
		Inode: 0,
		Nlink: 1,
		Mode:  fi.Mode(),
	}, nil
}
