package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Kind     string `json:"kind" validate:"required,oneof=course program"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	fields := Validate(sampleRequest{Email: "nope", Kind: "other"})
	require.NotNil(t, fields)

	assert.Equal(t, []string{"must be a valid email"}, fields["email"])
	assert.Equal(t, []string{"must be one of: course program"}, fields["kind"])
	assert.Equal(t, []string{"must be at least 1"}, fields["quantity"])
}

func TestValidate_Valid(t *testing.T) {
	assert.Nil(t, Validate(sampleRequest{Email: "a@b.co", Kind: "course", Quantity: 2}))
}
