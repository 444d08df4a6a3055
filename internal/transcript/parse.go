package transcript

import (
	"math"
	"strconv"
	"strings"
)

// ParseLenientFloat parses a numeric form field. Anything that does not
// parse as a finite, non-negative float yields 0. Callers check Valid on
// the selection instead of handling parse errors.
func ParseLenientFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
