package payments

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		total float64
		want  int64
	}{
		{0.29, 29},
		{19.99, 1999},
		{574.00, 57400},
		{0.01, 1},
		{1234.56, 123456},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, minorUnits(tc.total), "total %v", tc.total)
	}
}

func TestMinorUnitsAllTwoDecimalAmounts(t *testing.T) {
	// Every representable two-decimal amount up to 2000 must survive the
	// conversion exactly, including the ones float64 stores just below
	// their nominal value.
	for cents := int64(1); cents <= 200000; cents++ {
		total := math.Round(float64(cents)) / 100
		if got := minorUnits(total); got != cents {
			t.Fatalf("total %.2f: got %d minor units, want %d", total, got, cents)
		}
	}
}
