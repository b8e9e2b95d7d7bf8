package dto

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchStudentRequest_Apply(t *testing.T) {
	var req PatchStudentRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"student_email":" Ada@Example.com ","student_phone":null}`), &req))

	upd, bad := req.Apply()
	require.Nil(t, bad)
	assert.Equal(t, "ada@example.com", upd["student_email"])
	assert.Contains(t, upd, "student_phone")
	assert.Nil(t, upd["student_phone"])
	assert.NotContains(t, upd, "student_first_name")
}

func TestPatchStudentRequest_RejectsBlankFirstName(t *testing.T) {
	var req PatchStudentRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"student_first_name":"  "}`), &req))

	_, bad := req.Apply()
	assert.Contains(t, bad, "student_first_name")
}
