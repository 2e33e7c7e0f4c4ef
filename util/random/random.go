// util/random/random.go
//
// Synthesized plausible values for catalog fields the upstream sources omit.
// Non-cryptographic by design; the values are cosmetic and need not be
// reproducible.
package random

import (
	"fmt"
	"math/rand"
)

// Pages returns a plausible page count in [100, 499].
func Pages() int {
	return rand.Intn(400) + 100
}

// Rating returns a one-decimal rating string in [3.0, 5.0].
func Rating() string {
	return fmt.Sprintf("%.1f", rand.Float64()*2+3)
}

// Bool is true with probability p.
func Bool(p float64) bool {
	return rand.Float64() < p
}

// YearIn returns a year in [start, start+span).
func YearIn(start, span int) int {
	return start + rand.Intn(span)
}

// Code returns a zero-padded 6-digit one-time code.
func Code() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
