package feed

import (
	"fmt"
	"math"
	"strconv"
)

var metricSuffixes = []string{"K", "M", "B", "T", "Q"}

// MetricCount humanizes a counter for display: 0 renders as "-", values
// under 1000 render as-is, larger values collapse to a suffixed form such
// as "1.2K" or "3M".
func MetricCount(count int, decimals int) string {
	if count == 0 {
		return "-"
	}
	if count < 1000 {
		return strconv.Itoa(count)
	}

	exp := int(math.Log(float64(count)) / math.Log(1000))
	if exp > len(metricSuffixes) {
		exp = len(metricSuffixes)
	}
	value := float64(count) / math.Pow(1000, float64(exp))
	return fmt.Sprintf("%.*f%s", decimals, value, metricSuffixes[exp-1])
}
