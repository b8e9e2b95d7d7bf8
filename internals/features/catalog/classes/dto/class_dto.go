// file: internals/features/catalog/classes/dto/class_dto.go
package dto

import (
	"strings"

	"coursedesk_backend/internals/features/catalog/classes/model"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
)

/* =========================================================
   Requests: CREATE
   ========================================================= */

type CreateClassRequest struct {
	ClassCourseCode           string      `json:"class_course_code" validate:"required,max=16"`
	ClassTitle                string      `json:"class_title" validate:"required,max=200"`
	ClassStartDate            dbtime.Date `json:"class_start_date"`
	ClassCloseDate            dbtime.Date `json:"class_close_date"`
	ClassPriceCents           int64       `json:"class_price_cents" validate:"gte=0"`
	ClassRegistrationFeeCents *int64      `json:"class_registration_fee_cents" validate:"omitempty,gte=0"`
	ClassInvoice1DueDate      dbtime.Date `json:"class_invoice_1_due_date"`
	ClassInvoice2DueDate      dbtime.Date `json:"class_invoice_2_due_date"`
	ClassCapacity             *int        `json:"class_capacity" validate:"omitempty,gte=1"`
	ClassLocation             *string     `json:"class_location" validate:"omitempty,max=200"`
	ClassIsPublished          *bool       `json:"class_is_published"`
}

func (r *CreateClassRequest) Normalize() {
	r.ClassCourseCode = strings.ToUpper(strings.TrimSpace(r.ClassCourseCode))
	r.ClassTitle = strings.TrimSpace(r.ClassTitle)
	r.ClassLocation = trimPtr(r.ClassLocation)
}

// CheckDates covers the cross-field rules the validator tags cannot.
func (r *CreateClassRequest) CheckDates() map[string][]string {
	return checkDates(r.ClassStartDate, r.ClassCloseDate, r.ClassInvoice1DueDate, r.ClassInvoice2DueDate)
}

func (r *CreateClassRequest) ToModel(classCode string) *model.ClassModel {
	return &model.ClassModel{
		ClassCode:                 classCode,
		ClassCourseCode:           r.ClassCourseCode,
		ClassTitle:                r.ClassTitle,
		ClassStartDate:            r.ClassStartDate,
		ClassCloseDate:            r.ClassCloseDate,
		ClassPriceCents:           r.ClassPriceCents,
		ClassRegistrationFeeCents: r.ClassRegistrationFeeCents,
		ClassInvoice1DueDate:      r.ClassInvoice1DueDate,
		ClassInvoice2DueDate:      r.ClassInvoice2DueDate,
		ClassCapacity:             r.ClassCapacity,
		ClassLocation:             r.ClassLocation,
		ClassIsPublished:          r.ClassIsPublished != nil && *r.ClassIsPublished,
	}
}

/* =========================================================
   Requests: PATCH (course linkage and class_code are immutable)
   ========================================================= */

type PatchClassRequest struct {
	ClassCourseCode           helper.PatchField[string]      `json:"class_course_code"`
	ClassTitle                helper.PatchField[string]      `json:"class_title"`
	ClassStartDate            helper.PatchField[dbtime.Date] `json:"class_start_date"`
	ClassCloseDate            helper.PatchField[dbtime.Date] `json:"class_close_date"`
	ClassPriceCents           helper.PatchField[int64]       `json:"class_price_cents"`
	ClassRegistrationFeeCents helper.PatchField[int64]       `json:"class_registration_fee_cents"`
	ClassInvoice1DueDate      helper.PatchField[dbtime.Date] `json:"class_invoice_1_due_date"`
	ClassInvoice2DueDate      helper.PatchField[dbtime.Date] `json:"class_invoice_2_due_date"`
	ClassCapacity             helper.PatchField[int]         `json:"class_capacity"`
	ClassLocation             helper.PatchField[string]      `json:"class_location"`
	ClassIsPublished          helper.PatchField[bool]        `json:"class_is_published"`
}

// Apply validates the patch against the current row and returns the column
// updates. Date checks run on the merged result.
func (p *PatchClassRequest) Apply(cur *model.ClassModel) (map[string]any, map[string][]string) {
	upd := map[string]any{}
	bad := map[string][]string{}
	add := func(k, msg string) { bad[k] = append(bad[k], msg) }

	if v, ok := p.ClassCourseCode.Get(); ok && (v == nil || !strings.EqualFold(strings.TrimSpace(*v), cur.ClassCourseCode)) {
		add("class_course_code", "cannot be changed after creation")
	}
	if v, ok := p.ClassTitle.Get(); ok {
		if v == nil || strings.TrimSpace(*v) == "" {
			add("class_title", "is required")
		} else {
			upd["class_title"] = strings.TrimSpace(*v)
		}
	}

	merged := *cur
	setDate := func(f helper.PatchField[dbtime.Date], col string, dst *dbtime.Date) {
		if v, ok := f.Get(); ok {
			d := dbtime.Date{}
			if v != nil {
				d = *v
			}
			*dst = d
			upd[col] = d
		}
	}
	setDate(p.ClassStartDate, "class_start_date", &merged.ClassStartDate)
	setDate(p.ClassCloseDate, "class_close_date", &merged.ClassCloseDate)
	setDate(p.ClassInvoice1DueDate, "class_invoice_1_due_date", &merged.ClassInvoice1DueDate)
	setDate(p.ClassInvoice2DueDate, "class_invoice_2_due_date", &merged.ClassInvoice2DueDate)

	if v, ok := p.ClassPriceCents.Get(); ok {
		if v == nil || *v < 0 {
			add("class_price_cents", "must be at least 0")
		} else {
			upd["class_price_cents"] = *v
		}
	}
	if v, ok := p.ClassRegistrationFeeCents.Get(); ok {
		if v != nil && *v < 0 {
			add("class_registration_fee_cents", "must be at least 0")
		} else {
			upd["class_registration_fee_cents"] = v
		}
	}
	if v, ok := p.ClassCapacity.Get(); ok {
		if v != nil && *v < 1 {
			add("class_capacity", "must be at least 1")
		} else {
			upd["class_capacity"] = v
		}
	}
	if v, ok := p.ClassLocation.Get(); ok {
		upd["class_location"] = trimPtr(v)
	}
	if v, ok := p.ClassIsPublished.Get(); ok && v != nil {
		upd["class_is_published"] = *v
	}

	for k, msgs := range checkDates(merged.ClassStartDate, merged.ClassCloseDate, merged.ClassInvoice1DueDate, merged.ClassInvoice2DueDate) {
		bad[k] = append(bad[k], msgs...)
	}

	if len(bad) > 0 {
		return nil, bad
	}
	return upd, nil
}

func checkDates(start, end, due1, due2 dbtime.Date) map[string][]string {
	bad := map[string][]string{}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		bad["class_close_date"] = append(bad["class_close_date"], "must not be before class_start_date")
	}
	if !due1.IsZero() && !due2.IsZero() && due2.Before(due1) {
		bad["class_invoice_2_due_date"] = append(bad["class_invoice_2_due_date"], "must not be before class_invoice_1_due_date")
	}
	if len(bad) == 0 {
		return nil
	}
	return bad
}

/* =========================================================
   Responses
   ========================================================= */

type ClassResponse struct {
	model.ClassModel
	ClassCourseName    string `json:"class_course_name,omitempty"`
	ClassEnrolledCount int64  `json:"class_enrolled_count"`
}

type SyncClassResponse struct {
	ClassID       string `json:"class_id"`
	WebflowItemID string `json:"webflow_item_id"`
	Live          bool   `json:"live"`
	Fallback      bool   `json:"fallback"`
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
