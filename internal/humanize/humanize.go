// Package humanize formats byte counts, grounded on
// pkg/output/formatter.go's formatBytes but generalized to cover both the
// fixed-width text report's raw/human-readable split and the optional
// table report's locale-grouped numbers.
package humanize

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var units = [...]byte{'B', 'K', 'M', 'G', 'T', 'P', 'E', 'Z', 'Y'}

// Bytes renders n as the raw integer when human is false, or one decimal
// place with a binary-unit suffix (powers of 1024, largest unit for
// which multiplier <= value < multiplier*1024, so 1024 renders as 1.0K)
// when true.
func Bytes(n int64, human bool) string {
	if !human {
		return strconv.FormatInt(n, 10)
	}
	return bytesHuman(n)
}

func bytesHuman(n int64) string {
	if n == 0 {
		return "0.0B"
	}
	neg := n < 0
	v := n
	if neg {
		v = -v
	}

	idx := 0
	scaled := float64(v)
	for idx < len(units)-1 && scaled >= 1024 {
		scaled /= 1024
		idx++
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%.1f%c", sign, scaled, units[idx])
}

// groupingPrinter renders plain integers with locale thousands separators.
// It backs only the optional --output-format table path (internal/report's
// go-pretty renderer); the default fixed-width text columns always use
// Bytes above, which never groups digits, to keep the column widths
// exact.
var groupingPrinter = message.NewPrinter(language.English)

// Grouped renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func Grouped(n int64) string {
	return groupingPrinter.Sprintf("%d", n)
}
