// file: internals/features/people/students/service/student_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursedesk_backend/internals/features/people/students/model"
)

var ErrEmailRequired = errors.New("student email is required")

type Contact struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitName turns "Ada Lovelace King" into ("Ada", "Lovelace King").
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// FindOrCreateByEmail returns the student keyed by lower-cased email.
// Existing students keep their stored names; an empty phone is filled in.
// Must run inside the caller's transaction.
func FindOrCreateByEmail(ctx context.Context, tx *gorm.DB, in Contact) (*model.StudentModel, bool, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, false, ErrEmailRequired
	}

	row := model.StudentModel{
		StudentEmail:     email,
		StudentFirstName: strings.TrimSpace(in.FirstName),
		StudentLastName:  strings.TrimSpace(in.LastName),
	}
	if p := strings.TrimSpace(in.Phone); p != "" {
		row.StudentPhone = &p
	}

	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "student_email"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &row, true, nil
	}

	var cur model.StudentModel
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_email = ?", email).
		Take(&cur).Error; err != nil {
		return nil, false, err
	}
	if cur.StudentPhone == nil && row.StudentPhone != nil {
		if err := tx.WithContext(ctx).Model(&cur).
			Update("student_phone", *row.StudentPhone).Error; err != nil {
			return nil, false, err
		}
	}
	return &cur, false, nil
}
