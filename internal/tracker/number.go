package tracker

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NumberState tells apart "nothing typed" from "typed something that is
// not a number".
type NumberState int

const (
	NumberBlank NumberState = iota
	NumberInvalid
	NumberValid
)

// Number is an optional numeric value parsed from free text.
type Number struct {
	Value float64
	State NumberState
}

// Valid reports whether the text held a finite number.
func (n Number) Valid() bool { return n.State == NumberValid }

// numericPrefix matches the longest decimal literal at the start of a string,
// mirroring how browsers parse numbers out of form fields.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber parses free text leniently: leading whitespace is ignored and
// the longest numeric prefix is used, so "15 (dex)" yields 15. Text without
// a numeric prefix, or one that overflows to infinity, is invalid.
func ParseNumber(s string) Number {
	t := strings.TrimLeft(s, " \t\n\r\v\f")
	if strings.TrimSpace(t) == "" {
		return Number{State: NumberBlank}
	}
	lit := numericPrefix.FindString(t)
	if lit == "" {
		return Number{State: NumberInvalid}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return Number{State: NumberInvalid}
	}
	return Number{Value: v, State: NumberValid}
}

// FormatNumber renders v the way it is written back into a text field:
// the shortest decimal representation, without exponent for ordinary values.
func FormatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
