package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricCount(t *testing.T) {
	cases := []struct {
		count    int
		decimals int
		want     string
	}{
		{0, 1, "-"},
		{1, 1, "1"},
		{42, 0, "42"},
		{999, 2, "999"},
		{1000, 0, "1K"},
		{1200, 1, "1.2K"},
		{1250, 2, "1.25K"},
		{999999, 0, "1000K"},
		{1000000, 0, "1M"},
		{2500000, 1, "2.5M"},
		{3000000000, 0, "3B"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MetricCount(tc.count, tc.decimals), "count=%d decimals=%d", tc.count, tc.decimals)
	}
}
