// file: internals/features/finance/payments/model/invoice_to_import_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"coursedesk_backend/internals/helpers/dbtime"
)

// InvoiceToImportModel is a staging row for the accounting system. Two rows
// (sequence 1 and 2) are generated per registration-fee payment.
type InvoiceToImportModel struct {
	InvoiceToImportID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:invoice_to_import_id" json:"invoice_to_import_id"`
	InvoiceToImportPaymentID    uuid.UUID `gorm:"type:uuid;not null;index;column:invoice_to_import_payment_id" json:"invoice_to_import_payment_id"`
	InvoiceToImportEnrollmentID uuid.UUID `gorm:"type:uuid;not null;index;column:invoice_to_import_enrollment_id" json:"invoice_to_import_enrollment_id"`

	InvoiceToImportSequence      int         `gorm:"not null;column:invoice_to_import_sequence" json:"invoice_to_import_sequence"`
	InvoiceToImportInvoiceNumber int64       `gorm:"not null;uniqueIndex:uq_invoices_to_import_number;column:invoice_to_import_invoice_number" json:"invoice_to_import_invoice_number"`
	InvoiceToImportCustomerName  string      `gorm:"type:varchar(200);not null;column:invoice_to_import_customer_name" json:"invoice_to_import_customer_name"`
	InvoiceToImportCustomerEmail string      `gorm:"type:varchar(254);not null;column:invoice_to_import_customer_email" json:"invoice_to_import_customer_email"`
	InvoiceToImportItem          string      `gorm:"type:varchar(120);not null;column:invoice_to_import_item" json:"invoice_to_import_item"`
	InvoiceToImportMemo          string      `gorm:"type:text;not null;default:'';column:invoice_to_import_memo" json:"invoice_to_import_memo"`
	InvoiceToImportAmountCents   int64       `gorm:"not null;column:invoice_to_import_amount_cents" json:"invoice_to_import_amount_cents"`
	InvoiceToImportDueDate       dbtime.Date `gorm:"type:date;column:invoice_to_import_due_date" json:"invoice_to_import_due_date"`

	InvoiceToImportExportedAt *time.Time `gorm:"type:timestamptz;index;column:invoice_to_import_exported_at" json:"invoice_to_import_exported_at,omitempty"`

	InvoiceToImportCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:invoice_to_import_created_at" json:"invoice_to_import_created_at"`
}

func (InvoiceToImportModel) TableName() string { return "invoices_to_import" }
