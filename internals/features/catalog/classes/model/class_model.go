// file: internals/features/catalog/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coursedesk_backend/internals/helpers/dbtime"
)

type ClassModel struct {
	ClassID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`

	// "{course_code}-{NNN}", allocated on create
	ClassCode       string `gorm:"type:varchar(32);not null;uniqueIndex:uq_classes_code;column:class_code" json:"class_code"`
	ClassCourseCode string `gorm:"type:varchar(16);not null;index;column:class_course_code" json:"class_course_code"`
	ClassTitle      string `gorm:"type:varchar(200);not null;column:class_title" json:"class_title"`

	ClassStartDate dbtime.Date `gorm:"type:date;column:class_start_date" json:"class_start_date"`
	ClassCloseDate dbtime.Date `gorm:"type:date;column:class_close_date" json:"class_close_date"`

	// Money in cents
	ClassPriceCents           int64  `gorm:"not null;default:0;column:class_price_cents" json:"class_price_cents"`
	ClassRegistrationFeeCents *int64 `gorm:"column:class_registration_fee_cents" json:"class_registration_fee_cents"`

	// Installment due-date overrides
	ClassInvoice1DueDate dbtime.Date `gorm:"type:date;column:class_invoice_1_due_date" json:"class_invoice_1_due_date"`
	ClassInvoice2DueDate dbtime.Date `gorm:"type:date;column:class_invoice_2_due_date" json:"class_invoice_2_due_date"`

	ClassCapacity      *int    `gorm:"column:class_capacity" json:"class_capacity,omitempty"`
	ClassLocation      *string `gorm:"type:varchar(200);column:class_location" json:"class_location,omitempty"`
	ClassIsPublished   bool    `gorm:"not null;default:false;column:class_is_published" json:"class_is_published"`
	ClassWebflowItemID *string `gorm:"type:varchar(64);column:class_webflow_item_id" json:"class_webflow_item_id,omitempty"`

	ClassCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }
