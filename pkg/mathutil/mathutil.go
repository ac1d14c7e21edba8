// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mathutil

import (
	"math"
)

// Clamp limits v to the optional bounds lower and upper.
// A nil bound is not applied. When both are set and lower > upper, upper wins.
func Clamp(v int, lower, upper *int) int {
	if lower != nil && v < *lower {
		v = *lower
	}
	if upper != nil && v > *upper {
		v = *upper
	}
	return v
}

// TruncateFinite converts v to an int truncated toward zero; NaN and infinities become 0.
func TruncateFinite(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= math.MaxInt {
		return math.MaxInt
	}
	if v <= math.MinInt {
		return math.MinInt
	}
	return int(v)
}

// SaturatingAdd returns a+b limited to the int range.
func SaturatingAdd(a, b int) int {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt
	case b < 0 && sum > a:
		return math.MinInt
	}
	return sum
}

// SaturatingSub returns a-b limited to the int range.
func SaturatingSub(a, b int) int {
	diff := a - b
	switch {
	case b < 0 && diff < a:
		return math.MaxInt
	case b > 0 && diff > a:
		return math.MinInt
	}
	return diff
}

// SaturatingMul returns a*b limited to the int range.
func SaturatingMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	overflow := product/b != a ||
		(a == -1 && b == math.MinInt) ||
		(b == -1 && a == math.MinInt)
	if !overflow {
		return product
	}
	if (a > 0) == (b > 0) {
		return math.MaxInt
	}
	return math.MinInt
}
