// file: internals/features/finance/enrollments/service/enrollment_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursedesk_backend/internals/features/finance/enrollments/model"
)

// FindOrCreate returns the single enrollment of a student in a class.
// created is false when the pair already existed.
func FindOrCreate(ctx context.Context, tx *gorm.DB, studentID, classID uuid.UUID, at time.Time) (*model.EnrollmentModel, bool, error) {
	row := model.EnrollmentModel{
		EnrollmentStudentID:  studentID,
		EnrollmentClassID:    classID,
		EnrollmentEnrolledAt: at,
	}
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_student_id"}, {Name: "enrollment_class_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &row, true, nil
	}

	var cur model.EnrollmentModel
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("enrollment_student_id = ? AND enrollment_class_id = ?", studentID, classID).
		Take(&cur).Error; err != nil {
		return nil, false, err
	}
	return &cur, false, nil
}
