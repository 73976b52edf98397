// Package version compares dotted-numeric version strings. yt-dlp uses
// date-based versions (e.g. 2024.08.06, sometimes with a fourth component)
// that are not valid semver, so the comparison is plain component-wise
// numeric with zero padding.
package version

import (
	"strconv"
	"strings"
)

// IsNewer reports whether latest is strictly newer than current. Both
// strings may carry a leading "v". Unparsable input yields false.
func IsNewer(current, latest string) bool {
	currentParts, ok := parse(current)
	if !ok {
		return false
	}
	latestParts, ok := parse(latest)
	if !ok {
		return false
	}

	// Pad the shorter side with zeros so "1.2" equals "1.2.0".
	for len(currentParts) < len(latestParts) {
		currentParts = append(currentParts, 0)
	}
	for len(latestParts) < len(currentParts) {
		latestParts = append(latestParts, 0)
	}

	for i := range latestParts {
		if latestParts[i] != currentParts[i] {
			return latestParts[i] > currentParts[i]
		}
	}
	return false
}

func parse(v string) ([]int, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return nil, false
	}

	fields := strings.Split(v, ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, false
		}
		parts = append(parts, n)
	}
	return parts, true
}
