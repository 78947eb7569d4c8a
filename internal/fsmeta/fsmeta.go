// Package fsmeta resolves the lstat(2) fields the counter needs (size,
// uid, inode, nlink, mode) into a job.Meta, grounded on
// pkg/stat/walker.go's syscall.Stat_t extraction but going straight to
// golang.org/x/sys/unix.Lstat instead of routing through os.Lstat and a
// os.FileInfo.Sys() type assertion.
package fsmeta
