package symbolic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnmatchedParen reports a parenthesized term with no closing match.
	ErrUnmatchedParen = errors.New("unmatched parenthesis")
	// ErrMalformedPiecewise reports a conditional sub-expression whose
	// branch structure cannot be split or whose catch-all count is not one.
	ErrMalformedPiecewise = errors.New("malformed piecewise")
)

// MatchingParen returns the index of the closing parenthesis matching the
// opening parenthesis at s[0], scanning left to right and tracking nesting
// depth. The shortest valid input is the empty pair "()".
func MatchingParen(s string) (int, error) {
	if len(s) < 2 || s[0] != '(' {
		return 0, fmt.Errorf("%w: %q is not a parenthesized term", ErrUnmatchedParen, s)
	}
	depth := 1
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: no closing parenthesis in %q", ErrUnmatchedParen, s)
}

// SplitBalancedComma splits s at the first comma that leaves balanced
// parentheses on both sides. Commas inside nested calls stay intact; the
// split point is the one separating a piecewise branch expression from its
// guard condition.
func SplitBalancedComma(s string) (left, right string, err error) {
	for idx := 0; idx < len(s); idx++ {
		if s[idx] != ',' {
			continue
		}
		l, r := s[:idx], s[idx+1:]
		if balanced(l) && balanced(r) {
			return l, r, nil
		}
	}
	return "", "", fmt.Errorf("%w: no balanced comma split in %q", ErrMalformedPiecewise, s)
}

func balanced(s string) bool {
	return strings.Count(s, "(") == strings.Count(s, ")")
}

// splitTopLevel splits s on sep at parenthesis depth zero. Used for carving
// condition text into its boolean operands.
func splitTopLevel(s string, sep byte) (parts []string) {
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
