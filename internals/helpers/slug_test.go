package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "emr-003", Slugify("EMR-003", 0))
	assert.Equal(t, "cafe-basics", Slugify("  Café -- Basics ", 0))
	assert.Equal(t, "item", Slugify("***", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}
