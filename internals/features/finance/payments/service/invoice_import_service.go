// file: internals/features/finance/payments/service/invoice_import_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"coursedesk_backend/internals/features/finance/payments/model"
	txSvc "coursedesk_backend/internals/features/finance/transactions/service"
)

type Customer struct {
	Name  string
	Email string
}

// InvoicesToImport mirrors the tuition installment plan into export rows,
// one per installment, tied to the registration-fee payment.
func InvoicesToImport(paymentID, enrollmentID uuid.UUID, cust Customer, lines []txSvc.InstallmentLine) []model.InvoiceToImportModel {
	return lo.Map(lines, func(l txSvc.InstallmentLine, _ int) model.InvoiceToImportModel {
		return model.InvoiceToImportModel{
			InvoiceToImportPaymentID:     paymentID,
			InvoiceToImportEnrollmentID:  enrollmentID,
			InvoiceToImportSequence:      l.Sequence,
			InvoiceToImportInvoiceNumber: l.InvoiceNumber,
			InvoiceToImportCustomerName:  cust.Name,
			InvoiceToImportCustomerEmail: cust.Email,
			InvoiceToImportItem:          l.Item,
			InvoiceToImportMemo:          l.Memo,
			InvoiceToImportAmountCents:   l.AmountCents,
			InvoiceToImportDueDate:       l.DueDate,
		}
	})
}

// MarkExported stamps exported_at on the given pending rows. An empty id
// list marks every pending row. Rows already exported are left alone.
func MarkExported(ctx context.Context, db *gorm.DB, ids []uuid.UUID, at time.Time) (int64, error) {
	q := db.WithContext(ctx).
		Model(&model.InvoiceToImportModel{}).
		Where("invoice_to_import_exported_at IS NULL")
	if len(ids) > 0 {
		strIDs := lo.Uniq(lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }))
		q = q.Where("invoice_to_import_id = ANY(?::uuid[])", pq.StringArray(strIDs))
	}
	res := q.Update("invoice_to_import_exported_at", at)
	return res.RowsAffected, res.Error
}
