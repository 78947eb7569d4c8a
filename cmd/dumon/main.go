// Package main provides the entry point for the dumon CLI tool.
//
// dumon walks one or more directory trees in parallel and reports
// per-directory file counts and byte totals.
//
// Usage:
//
//	dumon [flags] [paths...]
package main

import (
	"errors"
	"fmt"
	"os"

	"dumon/cmd/dumon/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var runtimeErr *cmd.RuntimeError
	if errors.As(err, &runtimeErr) {
		fmt.Fprintln(os.Stderr, runtimeErr.Error())
		return 1
	}

	fmt.Fprintln(os.Stderr, err.Error())
	return 2
}
