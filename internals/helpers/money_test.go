package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	cases := map[int64]string{
		0:        "$0.00",
		5:        "$0.05",
		50000:    "$500.00",
		100000:   "$1,000.00",
		12345678: "$123,456.78",
		-2550:    "-$25.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCents(in), "cents=%d", in)
	}
}

func TestCentsToDecimal(t *testing.T) {
	assert.Equal(t, "1000.01", CentsToDecimal(100001).String())
}
