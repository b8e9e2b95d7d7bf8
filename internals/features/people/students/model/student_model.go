// file: internals/features/people/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	// always lower-case
	StudentEmail     string  `gorm:"type:varchar(254);not null;uniqueIndex:uq_students_email;column:student_email" json:"student_email"`
	StudentFirstName string  `gorm:"type:varchar(100);not null;column:student_first_name" json:"student_first_name"`
	StudentLastName  string  `gorm:"type:varchar(100);not null;default:'';column:student_last_name" json:"student_last_name"`
	StudentPhone     *string `gorm:"type:varchar(32);column:student_phone" json:"student_phone,omitempty"`

	StudentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (s StudentModel) FullName() string {
	if s.StudentLastName == "" {
		return s.StudentFirstName
	}
	return s.StudentFirstName + " " + s.StudentLastName
}
