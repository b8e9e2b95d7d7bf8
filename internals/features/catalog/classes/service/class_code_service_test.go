package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextClassCode(t *testing.T) {
	tests := []struct {
		name     string
		course   string
		existing []string
		want     string
	}{
		{"first class", "EMR", nil, "EMR-001"},
		{"dashed codes", "EMR", []string{"EMR-001", "EMR-002"}, "EMR-003"},
		{"legacy codes", "EMR", []string{"EMR007", "EMR-003"}, "EMR-008"},
		{"unordered with gaps", "EMR", []string{"EMR-010", "EMR-002"}, "EMR-011"},
		{"other course prefixes ignored", "EM", []string{"EMR-050", "EM-004"}, "EM-005"},
		{"garbage ignored", "EMR", []string{"EMR-ABC", "EMR-", "X-001"}, "EMR-001"},
		{"lower-case input", "emr", []string{"emr-001"}, "EMR-002"},
		{"past three digits", "EMR", []string{"EMR-999"}, "EMR-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextClassCode(tt.course, tt.existing))
		})
	}
}

func TestParseClassCodeSuffix(t *testing.T) {
	n, ok := ParseClassCodeSuffix("EMR", "EMR-042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = ParseClassCodeSuffix("EMR", "EMR042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = ParseClassCodeSuffix("EMR", "EMR-4a")
	assert.False(t, ok)
	_, ok = ParseClassCodeSuffix("", "EMR-001")
	assert.False(t, ok)
}
