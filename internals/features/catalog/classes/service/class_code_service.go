// file: internals/features/catalog/classes/service/class_code_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "coursedesk_backend/internals/features/catalog/classes/model"
	courseModel "coursedesk_backend/internals/features/catalog/courses/model"
	helper "coursedesk_backend/internals/helpers"
)

// ParseClassCodeSuffix extracts the sequence number from a class code of the
// given course. Both "EMR-007" and the legacy "EMR007" are accepted.
func ParseClassCodeSuffix(courseCode, code string) (int, bool) {
	courseCode = strings.ToUpper(strings.TrimSpace(courseCode))
	code = strings.ToUpper(strings.TrimSpace(code))
	if courseCode == "" || !strings.HasPrefix(code, courseCode) {
		return 0, false
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(code, courseCode), "-")
	if rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextClassCode returns "{course_code}-{NNN}" one past the highest existing
// suffix; the first class of a course gets 001.
func NextClassCode(courseCode string, existing []string) string {
	courseCode = strings.ToUpper(strings.TrimSpace(courseCode))
	maxSeq := 0
	for _, code := range existing {
		if n, ok := ParseClassCodeSuffix(courseCode, code); ok && n > maxSeq {
			maxSeq = n
		}
	}
	return fmt.Sprintf("%s-%03d", courseCode, maxSeq+1)
}

// AllocateClassCode must run inside a transaction. It locks the course row so
// concurrent creations for the same course serialize, then scans every code
// ever issued for it (soft-deleted classes included).
func AllocateClassCode(ctx context.Context, tx *gorm.DB, courseCode string) (*courseModel.CourseModel, string, error) {
	var course courseModel.CourseModel
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("course_code = ?", courseCode).
		Take(&course).Error; err != nil {
		return nil, "", helper.FromDBError(err, "course")
	}

	var codes []string
	if err := tx.WithContext(ctx).Unscoped().
		Model(&classModel.ClassModel{}).
		Where("class_course_code = ?", course.CourseCode).
		Pluck("class_code", &codes).Error; err != nil {
		return nil, "", helper.FromDBError(err, "class")
	}

	return &course, NextClassCode(course.CourseCode, codes), nil
}
