package fiscalqr

import (
	"errors"
	"fmt"
	"strings"
)

var errBadAmount = errors.New("fiscalqr: malformed amount")

// parseCents converts a decimal string to an exact amount of cents,
// rounding half-up at the second decimal place. Accepted forms follow
// decimal literal syntax: optional sign, digits, at most one dot with a
// non-empty fraction (".40" is fine, "1." is not). Floats are never
// involved, so amounts up to the int64 range stay exact.
func parseCents(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errBadAmount)
	}
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: no digits", errBadAmount)
	}
	if hasDot && fracPart == "" {
		return 0, fmt.Errorf("%w: trailing dot", errBadAmount)
	}
	for _, part := range []string{intPart, fracPart} {
		for _, c := range part {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("%w: %q", errBadAmount, s)
			}
		}
	}

	var cents int64
	for _, c := range intPart {
		cents = cents*10 + int64(c-'0')
	}
	cents *= 100
	if len(fracPart) >= 1 {
		cents += int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) >= 2 {
		cents += int64(fracPart[1] - '0')
	}
	// Half-up on the third decimal digit.
	if len(fracPart) >= 3 && fracPart[2] >= '5' {
		cents++
	}
	if neg {
		cents = -cents
	}
	return cents, nil
}
