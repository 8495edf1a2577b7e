package utils

import (
	"fmt"
	"strconv"
)

func RoundToTwoDecimals(value float64) float64 {
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.2f", value), 64)
	return rounded
}

// Share returns part as a percentage of total, rounded to two decimals.
// A non-positive total yields 0.
func Share(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return RoundToTwoDecimals(float64(part) / float64(total) * 100)
}
