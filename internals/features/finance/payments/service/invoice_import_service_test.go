package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	txSvc "coursedesk_backend/internals/features/finance/transactions/service"
	"coursedesk_backend/internals/helpers/dbtime"
)

func TestInvoicesToImport(t *testing.T) {
	paymentID, enrollmentID := uuid.New(), uuid.New()
	lines := []txSvc.InstallmentLine{
		{Sequence: 1, InvoiceNumber: 1000, AmountCents: 50000, DueDate: dbtime.MustParseDate("2025-05-11"), Item: "EMR:EMR-003:registration", Memo: "a"},
		{Sequence: 2, InvoiceNumber: 1001, AmountCents: 50000, DueDate: dbtime.MustParseDate("2025-06-08"), Item: "EMR:EMR-003:registration", Memo: "b"},
	}

	rows := InvoicesToImport(paymentID, enrollmentID, Customer{Name: "Ada Lovelace", Email: "ada@example.com"}, lines)
	require.Len(t, rows, 2)

	for i, r := range rows {
		assert.Equal(t, paymentID, r.InvoiceToImportPaymentID)
		assert.Equal(t, enrollmentID, r.InvoiceToImportEnrollmentID)
		assert.Equal(t, i+1, r.InvoiceToImportSequence)
		assert.Equal(t, lines[i].InvoiceNumber, r.InvoiceToImportInvoiceNumber)
		assert.Equal(t, lines[i].DueDate, r.InvoiceToImportDueDate)
		assert.Equal(t, "Ada Lovelace", r.InvoiceToImportCustomerName)
		assert.Nil(t, r.InvoiceToImportExportedAt)
	}
	assert.Equal(t, "b", rows[1].InvoiceToImportMemo)
}
