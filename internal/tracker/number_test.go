package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in    string
		state NumberState
		value float64
	}{
		{"", NumberBlank, 0},
		{"   ", NumberBlank, 0},
		{"15", NumberValid, 15},
		{" 15", NumberValid, 15},
		{"-5", NumberValid, -5},
		{"+3", NumberValid, 3},
		{"2.5", NumberValid, 2.5},
		{".5", NumberValid, 0.5},
		{"15 (dex)", NumberValid, 15},
		{"12abc", NumberValid, 12},
		{"1e2", NumberValid, 100},
		{"1e", NumberValid, 1},
		{"abc", NumberInvalid, 0},
		{"-", NumberInvalid, 0},
		{"Infinity", NumberInvalid, 0},
		{"1e999", NumberInvalid, 0},
	}
	for _, tc := range cases {
		got := ParseNumber(tc.in)
		assert.Equal(t, tc.state, got.State, "state for %q", tc.in)
		if tc.state == NumberValid {
			assert.Equal(t, tc.value, got.Value, "value for %q", tc.in)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12", FormatNumber(12))
	assert.Equal(t, "-5", FormatNumber(-5))
	assert.Equal(t, "2.5", FormatNumber(2.5))
	assert.Equal(t, "0", FormatNumber(0))
}
