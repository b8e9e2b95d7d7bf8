package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in, first, last string
	}{
		{"", "", ""},
		{"Ada", "Ada", ""},
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"  Ada   Lovelace  King ", "Ada", "Lovelace King"},
	}
	for _, tc := range cases {
		f, l := SplitName(tc.in)
		assert.Equal(t, tc.first, f, tc.in)
		assert.Equal(t, tc.last, l, tc.in)
	}
}

func TestFindOrCreateByEmail_RequiresEmail(t *testing.T) {
	_, _, err := FindOrCreateByEmail(context.Background(), nil, Contact{Email: "  "})
	assert.ErrorIs(t, err, ErrEmailRequired)
}
