// file: internals/features/catalog/courses/dto/course_dto.go
package dto

import (
	"strings"

	"coursedesk_backend/internals/features/catalog/courses/model"
	helper "coursedesk_backend/internals/helpers"
)

/* =========================================================
   Requests: CREATE
   ========================================================= */

type CreateCourseRequest struct {
	CourseCode            string           `json:"course_code" validate:"required,min=2,max=16,alphanum"`
	CourseName            string           `json:"course_name" validate:"required,max=160"`
	CourseKind            model.CourseKind `json:"course_kind" validate:"omitempty,oneof=course program"`
	CourseDescription     *string          `json:"course_description" validate:"omitempty,max=5000"`
	CourseStripeProductID *string          `json:"course_stripe_product_id" validate:"omitempty,startswith=prod_,max=64"`
	CourseIsActive        *bool            `json:"course_is_active"`
}

func (r *CreateCourseRequest) Normalize() {
	r.CourseCode = strings.ToUpper(strings.TrimSpace(r.CourseCode))
	r.CourseName = strings.TrimSpace(r.CourseName)
	r.CourseKind = model.CourseKind(strings.ToLower(strings.TrimSpace(string(r.CourseKind))))
	r.CourseDescription = trimPtr(r.CourseDescription)
	r.CourseStripeProductID = trimPtr(r.CourseStripeProductID)
}

func (r *CreateCourseRequest) ToModel() *model.CourseModel {
	kind := r.CourseKind
	if kind == "" {
		kind = model.CourseKindCourse
	}
	isActive := true
	if r.CourseIsActive != nil {
		isActive = *r.CourseIsActive
	}
	return &model.CourseModel{
		CourseCode:            r.CourseCode,
		CourseName:            r.CourseName,
		CourseKind:            kind,
		CourseDescription:     r.CourseDescription,
		CourseStripeProductID: r.CourseStripeProductID,
		CourseIsActive:        isActive,
	}
}

/* =========================================================
   Requests: PATCH (partial, course_code is immutable)
   ========================================================= */

type PatchCourseRequest struct {
	CourseName            helper.PatchField[string]           `json:"course_name"`
	CourseKind            helper.PatchField[model.CourseKind] `json:"course_kind"`
	CourseDescription     helper.PatchField[string]           `json:"course_description"`
	CourseStripeProductID helper.PatchField[string]           `json:"course_stripe_product_id"`
	CourseIsActive        helper.PatchField[bool]             `json:"course_is_active"`
}

// Apply validates and builds the column map for Updates.
func (p *PatchCourseRequest) Apply() (map[string]any, map[string][]string) {
	upd := map[string]any{}
	bad := map[string][]string{}

	if v, ok := p.CourseName.Get(); ok {
		if v == nil || strings.TrimSpace(*v) == "" {
			bad["course_name"] = append(bad["course_name"], "is required")
		} else {
			upd["course_name"] = strings.TrimSpace(*v)
		}
	}
	if v, ok := p.CourseKind.Get(); ok {
		if v == nil || (*v != model.CourseKindCourse && *v != model.CourseKindProgram) {
			bad["course_kind"] = append(bad["course_kind"], "must be one of: course program")
		} else {
			upd["course_kind"] = *v
		}
	}
	if v, ok := p.CourseDescription.Get(); ok {
		upd["course_description"] = trimPtr(v)
	}
	if v, ok := p.CourseStripeProductID.Get(); ok {
		v = trimPtr(v)
		if v != nil && !strings.HasPrefix(*v, "prod_") {
			bad["course_stripe_product_id"] = append(bad["course_stripe_product_id"], "must start with prod_")
		} else {
			upd["course_stripe_product_id"] = v
		}
	}
	if v, ok := p.CourseIsActive.Get(); ok && v != nil {
		upd["course_is_active"] = *v
	}

	if len(bad) > 0 {
		return nil, bad
	}
	return upd, nil
}

/* =========================================================
   Response
   ========================================================= */

type CourseResponse struct {
	model.CourseModel
	CourseClassCount int64 `json:"course_class_count"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
