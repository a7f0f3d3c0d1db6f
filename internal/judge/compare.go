package judge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Compare compares program output with the expected output token by token.
// Tokens are separated by any whitespace. With a tolerance, numeric tokens
// match when either the absolute or the relative error is within it.
// It returns false and a short description of the first difference otherwise.
func Compare(expected, actual []byte, tolerance *float64) (bool, string) {
	exp := strings.Fields(string(expected))
	act := strings.Fields(string(actual))

	n := len(exp)
	if len(act) < n {
		n = len(act)
	}
	for i := 0; i < n; i++ {
		if ok, diff := compareTokens(exp[i], act[i], tolerance, i); !ok {
			return false, diff
		}
	}
	if len(exp) != len(act) {
		return false, fmt.Sprintf("expected %d tokens, got %d", len(exp), len(act))
	}
	return true, ""
}

func compareTokens(expected, actual string, tolerance *float64, index int) (bool, string) {
	if expected == actual {
		return true, ""
	}
	if tolerance == nil {
		return false, fmt.Sprintf("%s: expected %q, got %q", tokenStr(index), expected, actual)
	}

	expFloat, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return false, fmt.Sprintf("%s: expected %q, got %q", tokenStr(index), expected, actual)
	}
	actFloat, err := strconv.ParseFloat(actual, 64)
	if err != nil {
		return false, fmt.Sprintf("%s: expected number %q, got %q", tokenStr(index), expected, actual)
	}

	// Handle special values
	if math.IsNaN(expFloat) || math.IsNaN(actFloat) {
		return false, fmt.Sprintf("%s: expected %v, got %v", tokenStr(index), expFloat, actFloat)
	}
	if math.IsInf(expFloat, 0) || math.IsInf(actFloat, 0) {
		if expFloat == actFloat {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected %v, got %v", tokenStr(index), expFloat, actFloat)
	}

	if math.Abs(expFloat-actFloat) <= *tolerance || isWithinRelativeTolerance(expFloat, actFloat, *tolerance) {
		return true, ""
	}
	return false, fmt.Sprintf("%s: expected %v, got %v (tolerance: %v)", tokenStr(index), expFloat, actFloat, *tolerance)
}

// isWithinRelativeTolerance checks if actual is within relative tolerance of expected.
// For expected == 0, uses absolute comparison to avoid division by zero.
func isWithinRelativeTolerance(expected, actual, tolerance float64) bool {
	if expected == 0 {
		return math.Abs(actual) <= tolerance
	}
	return math.Abs((expected-actual)/expected) <= tolerance
}

func tokenStr(index int) string {
	return fmt.Sprintf("token %d", index+1)
}
