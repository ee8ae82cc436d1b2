package update

import (
	"strconv"
	"strings"
)

// Compare does a dotted-numeric, component-wise comparison of two version
// strings with a leading "v" stripped from both sides and missing trailing
// components treated as zero (spec.md §4.5, §8 property 7). It returns a
// negative number if a < b, zero if equal, positive if a > b — ported
// directly from update_manager.py's implicit string-split comparison,
// which this module makes explicit rather than relying on a general-purpose
// semver library (see DESIGN.md).
func Compare(a, b string) int {
	pa := splitVersion(a)
	pb := splitVersion(b)

	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if x != y {
			return x - y
		}
	}
	return 0
}

// IsNewer reports whether latest is strictly greater than current.
func IsNewer(current, latest string) bool {
	return Compare(latest, current) > 0
}

func splitVersion(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	parts := strings.Split(v, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			n = 0
		}
		out = append(out, n)
	}
	return out
}
