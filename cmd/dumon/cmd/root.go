// Package cmd provides the Cobra CLI command structure for dumon.
package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dumon/internal/engine"
)

// ParseError marks a CLI argument that failed to parse, so main can map
// it onto exit code 2 instead of the generic fatal-error exit code 1.
// Any error Execute returns that is NOT a *ParseError (including cobra's
// own flag-syntax errors, which never reach runDumon) is treated as a
// CLI parse error too; RunE wraps genuine traversal failures as
// *RuntimeError to opt back into exit code 1.
type ParseError struct{ err error }

func (p *ParseError) Error() string { return p.err.Error() }
func (p *ParseError) Unwrap() error { return p.err }

func parseErrorf(format string, args ...any) error {
	return &ParseError{err: fmt.Errorf(format, args...)}
}

// RuntimeError marks a fatal error surfaced while running the traversal
// pipeline itself, as opposed to a malformed CLI invocation.
type RuntimeError struct{ err error }

func (r *RuntimeError) Error() string { return r.err.Error() }
func (r *RuntimeError) Unwrap() error { return r.err }

var (
	maxDepth       int
	fileLimitStr   string
	sizeLimitStr   string
	includeRegex   string
	excludeRegex   string
	excludeSubdirs bool
	quiet          bool
	userMode       bool
	humanReadable  bool
	statusSeconds  int
	workers        int
	outputFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "dumon [paths...]",
	Short: "Parallel filesystem accounting",
	Long: `dumon walks one or more directory trees in parallel and reports
per-directory file counts and byte totals, optionally split by owning
user, with filtering by minimum count/size and output depth.

Examples:
  dumon /var/log
  dumon --user --human-readable /home
  dumon --max-depth 1 --file-limit 10000 /data`,
	RunE: runDumon,
}

func init() {
	rootCmd.Flags().IntVarP(&maxDepth, "max-depth", "d", engine.Unlimited,
		"emit lines only at depth <= N (root is depth 0); unset means unlimited")
	rootCmd.Flags().StringVarP(&fileLimitStr, "file-limit", "n", "",
		"threshold for emitting (file count)")
	rootCmd.Flags().StringVarP(&sizeLimitStr, "size-limit", "k", "",
		"threshold for emitting (bytes; accepts K/M/G/T suffix)")
	rootCmd.Flags().StringVar(&excludeRegex, "exclude", "",
		"drop paths whose full path matches this regex")
	rootCmd.Flags().StringVar(&includeRegex, "include", "",
		"keep only paths whose full path matches this regex")
	rootCmd.Flags().BoolVar(&excludeSubdirs, "exclude-subdirs", false,
		"suppress subtree roll-up; each directory reports only its own files")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress the header line")
	rootCmd.Flags().BoolVarP(&userMode, "user", "u", false,
		"emit one row per uid instead of one row per directory")
	rootCmd.Flags().BoolVarP(&humanReadable, "human-readable", "h", false,
		"sizes as %.1f with a binary unit suffix")
	rootCmd.Flags().IntVarP(&statusSeconds, "status", "s", 0,
		"progress every S seconds to the diagnostic stream; negative disables")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 8,
		"worker pool size (minimum 1)")
	rootCmd.Flags().StringVar(&outputFormat, "output-format", "text",
		"output format: text or table")
}

func runDumon(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	if workers < 1 {
		workers = 1
	}

	fileLimit, sizeLimit, err := parseLimits(fileLimitStr, sizeLimitStr)
	if err != nil {
		return err
	}

	if outputFormat != "text" && outputFormat != "table" {
		return parseErrorf("invalid --output-format %q: must be text or table", outputFormat)
	}

	cfg := engine.Config{
		Roots:          roots,
		Workers:        workers,
		MaxDepth:       maxDepth,
		FileLimit:      fileLimit,
		SizeLimit:      sizeLimit,
		Include:        includeRegex,
		Exclude:        excludeRegex,
		ExcludeSubdirs: excludeSubdirs,
		Quiet:          quiet,
		UserMode:       userMode,
		Human:          humanReadable,
		StatusInterval: time.Duration(statusSeconds) * time.Second,
		Table:          outputFormat == "table",
	}

	if err := engine.Run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		return &RuntimeError{err: err}
	}
	return nil
}

// parseLimits resolves --file-limit/--size-limit, applying the
// auto-coupling rule: if exactly one threshold is given, the unset one
// is treated as effectively unbounded so the given threshold alone
// governs emission.
func parseLimits(fileLimitStr, sizeLimitStr string) (fileLimit, sizeLimit uint64, err error) {
	const unbounded = uint64(1_000_000_000_000_000_000)

	haveFile := fileLimitStr != ""
	haveSize := sizeLimitStr != ""

	if haveFile {
		fileLimit, err = strconv.ParseUint(fileLimitStr, 10, 64)
		if err != nil {
			return 0, 0, parseErrorf("invalid --file-limit %q: %w", fileLimitStr, err)
		}
	}
	if haveSize {
		sizeLimit, err = parseSize(sizeLimitStr)
		if err != nil {
			return 0, 0, parseErrorf("invalid --size-limit %q: %w", sizeLimitStr, err)
		}
	}

	switch {
	case haveFile && !haveSize:
		sizeLimit = unbounded
	case haveSize && !haveFile:
		fileLimit = unbounded
	}
	return fileLimit, sizeLimit, nil
}

// parseSize parses a byte count with an optional binary-unit suffix
// (B, K/KB, M/MB, G/GB, T/TB), grounded on cmd/cwalk/cmd/root.go's
// parseSize helper.
func parseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	numPart := s[:i]
	unitPart := strings.ToUpper(strings.TrimSpace(s[i:]))

	num, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, err
	}

	var multiplier float64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	case "T", "TB":
		multiplier = 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size unit: %s", unitPart)
	}

	return uint64(num * multiplier), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
