package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	classModel "coursedesk_backend/internals/features/catalog/classes/model"
	courseModel "coursedesk_backend/internals/features/catalog/courses/model"
	"coursedesk_backend/internals/helpers/dbtime"
)

func TestClassFields_SendsEveryFieldWithEmptyForNull(t *testing.T) {
	cls := classModel.ClassModel{
		ClassCode:       "EMR-003",
		ClassCourseCode: "EMR",
		ClassTitle:      "EMR Summer",
		ClassStartDate:  dbtime.MustParseDate("2025-06-01"),
		ClassPriceCents: 100000,
	}
	course := courseModel.CourseModel{CourseName: "Emergency Medical Responder", CourseKind: courseModel.CourseKindCourse}

	f := ClassFields(cls, course)

	assert.Equal(t, "emr-003", f["slug"])
	assert.Equal(t, "2025-06-01T00:00:00.000Z", f["start-date"])
	assert.Equal(t, "$1,000.00", f["price"])
	for _, k := range []string{"close-date", "location", "registration-fee", "capacity", "course-description"} {
		v, ok := f[k]
		assert.True(t, ok, k)
		assert.Equal(t, "", v, k)
	}
}

func TestInstallmentInputFor(t *testing.T) {
	cls := classModel.ClassModel{
		ClassCode:            "EMR-003",
		ClassCourseCode:      "EMR",
		ClassPriceCents:      100000,
		ClassStartDate:       dbtime.MustParseDate("2025-06-01"),
		ClassInvoice1DueDate: dbtime.MustParseDate("2025-05-01"),
	}
	in := InstallmentInputFor(cls, dbtime.MustParseDate("2025-03-01"), "Ada")

	assert.Equal(t, "EMR", in.CourseCode)
	assert.Equal(t, "EMR-003", in.ClassCode)
	assert.Equal(t, int64(100000), in.PriceCents)
	assert.Equal(t, "2025-05-01", in.Invoice1Due.String())
	assert.True(t, in.Invoice2Due.IsZero())
}
