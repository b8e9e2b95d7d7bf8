// file: internals/features/catalog/courses/model/course_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseKind string

const (
	CourseKindCourse  CourseKind = "course"
	CourseKindProgram CourseKind = "program"
)

type CourseModel struct {
	CourseID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`

	// course_code prefixes every class_code and never changes
	CourseCode        string     `gorm:"type:varchar(16);not null;uniqueIndex:uq_courses_code;column:course_code" json:"course_code"`
	CourseName        string     `gorm:"type:varchar(160);not null;column:course_name" json:"course_name"`
	CourseKind        CourseKind `gorm:"type:varchar(16);not null;default:'course';column:course_kind" json:"course_kind"`
	CourseDescription *string    `gorm:"type:text;column:course_description" json:"course_description,omitempty"`

	// Integrations
	CourseStripeProductID *string `gorm:"type:varchar(64);column:course_stripe_product_id" json:"course_stripe_product_id,omitempty"`
	CourseWebflowItemID   *string `gorm:"type:varchar(64);column:course_webflow_item_id" json:"course_webflow_item_id,omitempty"`

	CourseIsActive bool `gorm:"not null;default:true;column:course_is_active" json:"course_is_active"`

	CourseCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:course_created_at" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:course_updated_at" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
