// file: internals/features/catalog/classes/service/class_sync_service.go
package service

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	classModel "coursedesk_backend/internals/features/catalog/classes/model"
	courseModel "coursedesk_backend/internals/features/catalog/courses/model"
	"coursedesk_backend/internals/features/integrations/webflow"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
)

func dateField(d dbtime.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02T00:00:00.000Z")
}

// ClassFields maps a class onto its CMS item. Every field is always sent so
// values cleared locally are cleared on the site as well.
func ClassFields(cls classModel.ClassModel, course courseModel.CourseModel) webflow.Fields {
	f := webflow.Fields{
		"name":        cls.ClassTitle,
		"slug":        helper.Slugify(cls.ClassCode, 64),
		"class-code":  cls.ClassCode,
		"course-code": cls.ClassCourseCode,
		"course-name": course.CourseName,
		"course-kind": string(course.CourseKind),
		"start-date":  dateField(cls.ClassStartDate),
		"close-date":  dateField(cls.ClassCloseDate),
		"price":       helper.FormatCents(cls.ClassPriceCents),
	}
	f.SetString("location", cls.ClassLocation)
	f.SetString("course-description", course.CourseDescription)

	if cls.ClassRegistrationFeeCents != nil {
		f["registration-fee"] = helper.FormatCents(*cls.ClassRegistrationFeeCents)
	} else {
		f["registration-fee"] = ""
	}
	if cls.ClassCapacity != nil {
		f["capacity"] = strconv.Itoa(*cls.ClassCapacity)
	} else {
		f["capacity"] = ""
	}
	return f
}

// SyncClass pushes one class to the CMS and stores the item id it got back,
// also when the item was written but not yet published.
func SyncClass(ctx context.Context, db *gorm.DB, cms webflow.CMS, cls *classModel.ClassModel, course courseModel.CourseModel) (webflow.SyncResult, error) {
	itemID := ""
	if cls.ClassWebflowItemID != nil {
		itemID = *cls.ClassWebflowItemID
	}

	res, syncErr := webflow.SyncItem(ctx, cms, itemID, ClassFields(*cls, course))
	if res.ItemID != "" && res.ItemID != itemID {
		id := res.ItemID
		if err := db.WithContext(ctx).Model(cls).Update("class_webflow_item_id", id).Error; err != nil {
			return res, helper.FromDBError(err, "class")
		}
		cls.ClassWebflowItemID = &id
	}
	return res, syncErr
}
