package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tol(v float64) *float64 { return &v }

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		expected  string
		actual    string
		tolerance *float64
		want      bool
	}{
		{"identical", "1 2 3\n", "1 2 3\n", nil, true},
		{"whitespace differs", "1 2\n3\n", "1  2 3", nil, true},
		{"trailing newline missing", "42\n", "42", nil, true},
		{"different token", "1 2 3", "1 2 4", nil, false},
		{"missing token", "1 2 3", "1 2", nil, false},
		{"extra token", "1 2", "1 2 3", nil, false},
		{"numeric without tolerance", "1.0", "1.00", nil, false},
		{"absolute error", "1.0", "1.0000001", tol(1e-6), true},
		{"relative error", "1000000", "1000000.5", tol(1e-6), true},
		{"outside tolerance", "1.0", "1.1", tol(1e-6), false},
		{"expected zero", "0", "0.0000001", tol(1e-6), true},
		{"non-numeric with tolerance", "YES", "NO", tol(1e-6), false},
		{"non-numeric output", "1.5", "abc", tol(1e-6), false},
		{"equal strings with tolerance", "YES", "YES", tol(1e-6), true},
		{"nan", "nan", "nan", tol(1e-6), true},
		{"nan against number", "nan", "1", tol(1e-6), false},
		{"inf", "inf", "inf", tol(1e-6), true},
		{"inf against large", "inf", "1e308", tol(1e-6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, diff := Compare([]byte(tt.expected), []byte(tt.actual), tt.tolerance)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Empty(t, diff)
			} else {
				assert.NotEmpty(t, diff)
			}
		})
	}
}

func TestCompare_DiffMentionsToken(t *testing.T) {
	_, diff := Compare([]byte("a b c"), []byte("a x c"), nil)
	assert.Contains(t, diff, "token 2")
}
