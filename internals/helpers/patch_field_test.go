package helper

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchField_TriState(t *testing.T) {
	var body struct {
		Title    PatchField[string] `json:"title"`
		Location PatchField[string] `json:"location"`
		Capacity PatchField[int]    `json:"capacity"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(`{"title":"Intro","location":null}`), &body))

	v, ok := body.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "Intro", *v)
	assert.True(t, body.Title.Set())

	v, ok = body.Location.Get()
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.False(t, body.Location.Set())

	_, ok = body.Capacity.Get()
	assert.False(t, ok)
}
