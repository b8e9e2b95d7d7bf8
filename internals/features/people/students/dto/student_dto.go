// file: internals/features/people/students/dto/student_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"coursedesk_backend/internals/features/people/students/model"
	helper "coursedesk_backend/internals/helpers"
)

type PatchStudentRequest struct {
	StudentEmail     helper.PatchField[string] `json:"student_email"`
	StudentFirstName helper.PatchField[string] `json:"student_first_name"`
	StudentLastName  helper.PatchField[string] `json:"student_last_name"`
	StudentPhone     helper.PatchField[string] `json:"student_phone"`
}

// Apply builds the column map; null is only accepted for student_phone.
func (p *PatchStudentRequest) Apply() (map[string]any, map[string][]string) {
	upd := map[string]any{}
	bad := map[string][]string{}

	if v, ok := p.StudentEmail.Get(); ok {
		if v == nil || !strings.Contains(*v, "@") {
			bad["student_email"] = []string{"must be a valid email"}
		} else {
			upd["student_email"] = strings.ToLower(strings.TrimSpace(*v))
		}
	}
	if v, ok := p.StudentFirstName.Get(); ok {
		if v == nil || strings.TrimSpace(*v) == "" {
			bad["student_first_name"] = []string{"is required"}
		} else {
			upd["student_first_name"] = strings.TrimSpace(*v)
		}
	}
	if v, ok := p.StudentLastName.Get(); ok {
		if v == nil {
			upd["student_last_name"] = ""
		} else {
			upd["student_last_name"] = strings.TrimSpace(*v)
		}
	}
	if v, ok := p.StudentPhone.Get(); ok {
		if v == nil || strings.TrimSpace(*v) == "" {
			upd["student_phone"] = nil
		} else {
			upd["student_phone"] = strings.TrimSpace(*v)
		}
	}

	if len(bad) > 0 {
		return nil, bad
	}
	return upd, nil
}

type StudentEnrollment struct {
	EnrollmentID  uuid.UUID `json:"enrollment_id"`
	ClassID       uuid.UUID `json:"class_id"`
	ClassCode     string    `json:"class_code"`
	ClassTitle    string    `json:"class_title"`
	EnrolledAt    time.Time `json:"enrolled_at"`
	PaymentStatus string    `json:"payment_status"`
}

type StudentDetailResponse struct {
	model.StudentModel
	Enrollments []StudentEnrollment `json:"enrollments"`
}
