package model

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Number is a numeric field that is either known or unresolved.
//
// The zero value is unresolved. Decoding never fails on bad input: null,
// missing, non-finite or unparseable values all decode to unresolved so
// that fallback chains can decide what to do with them.
type Number struct {
	value float64
	known bool
}

// Known returns a resolved Number holding v.
func Known(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{value: v, known: true}
}

// Unresolved returns a Number with no value.
func Unresolved() Number {
	return Number{}
}

// Value returns the number and whether it is known.
func (n Number) Value() (float64, bool) {
	return n.value, n.known
}

// IsKnown reports whether the number holds a value.
func (n Number) IsKnown() bool {
	return n.known
}

// Positive reports whether the number is known and greater than zero.
func (n Number) Positive() bool {
	return n.known && n.value > 0
}

// Or returns the value, or fallback when unresolved.
func (n Number) Or(fallback float64) float64 {
	if n.known {
		return n.value
	}
	return fallback
}

func (n Number) String() string {
	if !n.known {
		return "unknown"
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// MarshalJSON encodes unresolved numbers as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.known {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON accepts numbers and numeric strings such as "64" or "64-bit".
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		*n = Known(v)
	case string:
		if f, ok := parseNumeric(v); ok {
			*n = Known(f)
		}
	}
	return nil
}

// numericPattern matches a bare number with an optional bit-width suffix.
var numericPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*(?:-?\s*bits?|b)?$`)

func parseNumeric(s string) (float64, bool) {
	m := numericPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Measure is a raw textual measurement such as "1500 MHz", "12 ns" or
// "25.6 GB/s". Bare JSON numbers decode to their decimal text.
type Measure string

// UnmarshalJSON accepts either a string or a number.
func (m *Measure) UnmarshalJSON(data []byte) error {
	*m = ""

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case string:
		*m = Measure(strings.TrimSpace(v))
	case float64:
		*m = Measure(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return nil
}

// IsZero reports whether the measurement is absent.
func (m Measure) IsZero() bool {
	return m == ""
}
