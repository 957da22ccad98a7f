package view

import (
	"math"
	"strconv"
)

// BelowThreshold is shown instead of percentages that round below 0.1.
const BelowThreshold = "< 0.1%"

// FormatPercentage renders 100*value/total with three significant digits,
// keeping trailing zeros ("5.00%", "66.7%", "100%"). Shares that round below
// 0.1 and a zero total are shown as BelowThreshold.
func FormatPercentage(value, total int64) string {
	if total <= 0 {
		return BelowThreshold
	}
	pct := 100 * float64(value) / float64(total)

	// Round first so values like 99.96 are measured after carrying to 100.
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(pct, 'g', 3, 64), 64)
	if err != nil || rounded < 0.1 {
		return BelowThreshold
	}

	exp := int(math.Floor(math.Log10(math.Abs(rounded))))
	decimals := 2 - exp
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(rounded, 'f', decimals, 64) + "%"
}
