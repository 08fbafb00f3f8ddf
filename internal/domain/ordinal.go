package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	ordinalPattern    = regexp.MustCompile(`^\((\d+)\)`)
	taskPrefixPattern = regexp.MustCompile(`^(\d+\.\d+)\s+(.*)`)
	namePrefixPattern = regexp.MustCompile(`^\d+(\.\d+)?\s+`)
)

// NoOrdinal sorts activities without a "(n)" prefix after every numbered one.
const NoOrdinal = 9999

// ExtractOrdinal returns n for descriptions starting with "(n)".
func ExtractOrdinal(description string) (int, bool) {
	m := ordinalPattern.FindStringSubmatch(strings.TrimSpace(description))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// OrdinalOrDefault is ExtractOrdinal with NoOrdinal for unnumbered descriptions.
func OrdinalOrDefault(description string) int {
	if n, ok := ExtractOrdinal(description); ok {
		return n
	}
	return NoOrdinal
}

// StripTaskPrefix removes a leading "n.n " ordinal from a task name.
func StripTaskPrefix(name string) string {
	if m := taskPrefixPattern.FindStringSubmatch(name); m != nil {
		return m[2]
	}
	return name
}

// StripNamePrefix removes a leading "n " or "n.n " ordinal, as used when
// renumbering tasks in reports.
func StripNamePrefix(name string) string {
	return strings.TrimSpace(namePrefixPattern.ReplaceAllString(name, ""))
}
