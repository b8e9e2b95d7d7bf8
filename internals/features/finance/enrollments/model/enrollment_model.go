// file: internals/features/finance/enrollments/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// One enrollment per (student, class).
type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_id" json:"enrollment_id"`
	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_student_class,priority:1;column:enrollment_student_id" json:"enrollment_student_id"`
	EnrollmentClassID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_student_class,priority:2;column:enrollment_class_id" json:"enrollment_class_id"`

	EnrollmentEnrolledAt time.Time `gorm:"type:timestamptz;not null;default:now();column:enrollment_enrolled_at" json:"enrollment_enrolled_at"`

	EnrollmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:enrollment_created_at" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:enrollment_updated_at" json:"enrollment_updated_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
