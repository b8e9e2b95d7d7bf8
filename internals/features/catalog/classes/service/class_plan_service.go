// file: internals/features/catalog/classes/service/class_plan_service.go
package service

import (
	classModel "coursedesk_backend/internals/features/catalog/classes/model"
	txSvc "coursedesk_backend/internals/features/finance/transactions/service"
	"coursedesk_backend/internals/helpers/dbtime"
)

// InstallmentInputFor builds the tuition plan input for a class.
func InstallmentInputFor(cls classModel.ClassModel, paymentDate dbtime.Date, studentName string) txSvc.InstallmentInput {
	return txSvc.InstallmentInput{
		CourseCode:  cls.ClassCourseCode,
		ClassCode:   cls.ClassCode,
		ClassTitle:  cls.ClassTitle,
		PriceCents:  cls.ClassPriceCents,
		StartDate:   cls.ClassStartDate,
		Invoice1Due: cls.ClassInvoice1DueDate,
		Invoice2Due: cls.ClassInvoice2DueDate,
		PaymentDate: paymentDate,
		StudentName: studentName,
	}
}
