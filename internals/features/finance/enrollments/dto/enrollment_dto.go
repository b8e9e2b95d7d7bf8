// file: internals/features/finance/enrollments/dto/enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	payModel "coursedesk_backend/internals/features/finance/payments/model"
	txDto "coursedesk_backend/internals/features/finance/transactions/dto"
	"coursedesk_backend/internals/helpers/dbtime"
)

// EnrollmentListItem is one row of the admin roster.
type EnrollmentListItem struct {
	EnrollmentID         uuid.UUID `json:"enrollment_id"`
	EnrollmentEnrolledAt time.Time `json:"enrollment_enrolled_at"`

	StudentID    uuid.UUID `json:"student_id"`
	StudentEmail string    `json:"student_email"`
	StudentName  string    `json:"student_name"`

	ClassID         uuid.UUID   `json:"class_id"`
	ClassCode       string      `json:"class_code"`
	ClassTitle      string      `json:"class_title"`
	ClassStartDate  dbtime.Date `json:"class_start_date"`
	ClassCourseCode string      `json:"class_course_code"`

	PaymentStatus string `json:"payment_status"`
}

type EnrollmentDetailResponse struct {
	EnrollmentListItem
	Transactions []txDto.TransactionResponse `json:"transactions"`
	Payments     []payModel.PaymentModel     `json:"payments"`
}
