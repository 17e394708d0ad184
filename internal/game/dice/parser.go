package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed duration or amount expression.
//
// Supported forms:
//   - "3"       constant
//   - "2-5"     uniform inclusive range
//   - "d4", "1d4+1", "2d3-1"  dice with optional modifier
//
// Invariant: for dice forms Count >= 1 and Sides >= 2; for ranges Min <= Max.
type Expression struct {
	Raw      string
	Count    int // number of dice; 0 for constant and range forms
	Sides    int
	Modifier int
	Min, Max int // range bounds; equal for constants
}

// Parse parses expr into an Expression.
//
// Precondition: expr must be non-empty.
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	if dIdx := strings.Index(s, "d"); dIdx >= 0 {
		return parseDice(expr, s, dIdx)
	}
	if lo, hi, ok := strings.Cut(s, "-"); ok && lo != "" {
		from, err := strconv.Atoi(lo)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid range start in %q: %w", expr, err)
		}
		to, err := strconv.Atoi(hi)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid range end in %q: %w", expr, err)
		}
		if from > to {
			return Expression{}, fmt.Errorf("dice: range %q is inverted", expr)
		}
		return Expression{Raw: expr, Min: from, Max: to}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid constant %q: %w", expr, err)
	}
	return Expression{Raw: expr, Min: n, Max: n}, nil
}

func parseDice(raw, s string, dIdx int) (Expression, error) {
	count := 1
	if dIdx > 0 {
		c, err := strconv.Atoi(s[:dIdx])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if c <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
		}
		count = c
	}

	rest := s[dIdx+1:]
	sidesStr, modStr := rest, ""
	if i := strings.IndexAny(rest, "+-"); i > 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", raw)
	}
	mod := 0
	if modStr != "" {
		if mod, err = strconv.Atoi(modStr); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}
	return Expression{
		Raw:      raw,
		Count:    count,
		Sides:    sides,
		Modifier: mod,
		Min:      count + mod,
		Max:      count*sides + mod,
	}, nil
}

// Constant reports whether the expression always yields the same value
// without consuming randomness.
func (e Expression) Constant() bool {
	return e.Count == 0 && e.Min == e.Max
}
