package dto

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursedesk_backend/internals/features/catalog/courses/model"
	helper "coursedesk_backend/internals/helpers"
)

func TestCreateCourseRequest_NormalizeAndValidate(t *testing.T) {
	req := CreateCourseRequest{CourseCode: " emr ", CourseName: " Emergency Medical Responder ", CourseStripeProductID: strp(" ")}
	req.Normalize()
	require.Nil(t, helper.Validate(&req))

	m := req.ToModel()
	assert.Equal(t, "EMR", m.CourseCode)
	assert.Equal(t, model.CourseKindCourse, m.CourseKind)
	assert.Nil(t, m.CourseStripeProductID)
	assert.True(t, m.CourseIsActive)
}

func TestCreateCourseRequest_RejectsBadProductID(t *testing.T) {
	req := CreateCourseRequest{CourseCode: "EMR", CourseName: "x", CourseStripeProductID: strp("price_123")}
	req.Normalize()
	fields := helper.Validate(&req)
	require.NotNil(t, fields)
	assert.Equal(t, []string{"must start with prod_"}, fields["course_stripe_product_id"])
}

func TestPatchCourseRequest_Apply(t *testing.T) {
	var p PatchCourseRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"course_name":" New ","course_description":null,"course_kind":"program"}`), &p))

	upd, bad := p.Apply()
	require.Nil(t, bad)
	assert.Equal(t, "New", upd["course_name"])
	assert.Equal(t, model.CourseKindProgram, upd["course_kind"])
	assert.Contains(t, upd, "course_description")
	assert.Nil(t, upd["course_description"])
	assert.NotContains(t, upd, "course_is_active")
}

func TestPatchCourseRequest_Invalid(t *testing.T) {
	var p PatchCourseRequest
	require.NoError(t, sonic.Unmarshal([]byte(`{"course_name":"","course_stripe_product_id":"abc"}`), &p))

	_, bad := p.Apply()
	assert.Contains(t, bad, "course_name")
	assert.Contains(t, bad, "course_stripe_product_id")
}

func strp(s string) *string { return &s }
