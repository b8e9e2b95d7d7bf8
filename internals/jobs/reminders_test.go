package jobs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	txModel "coursedesk_backend/internals/features/finance/transactions/model"
	"coursedesk_backend/internals/features/integrations/email"
	"coursedesk_backend/internals/helpers/dbtime"
)

func TestReminderData(t *testing.T) {
	r := PastDueRow{
		TransactionID:             uuid.New(),
		TransactionType:           txModel.TransactionTypeTuitionB,
		TransactionAmountDueCents: 50000,
		TransactionDueDate:        dbtime.MustParseDate("2025-06-08"),
		TransactionInvoiceNumber:  lo.ToPtr(int64(1001)),
		StudentEmail:              "ada@example.com",
		StudentFirstName:          "Ada",
		StudentLastName:           "Lovelace",
		ClassTitle:                "Emergency Medical Responder",
	}

	d := ReminderData(r)
	assert.Equal(t, "Ada Lovelace", d.StudentName)
	assert.Equal(t, "tuition installment 2 of 2", d.Description)
	assert.Equal(t, "2025-06-08", d.DueDate)
	assert.Equal(t, int64(1001), d.InvoiceNumber)

	msg, err := email.PastDueReminder(r.StudentEmail, d)
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "$500.00")
	assert.Contains(t, msg.HTML, "#1001")
}

func TestInstallmentLabel(t *testing.T) {
	assert.Equal(t, "tuition installment 1 of 2", installmentLabel(txModel.TransactionTypeTuitionA))
	assert.Equal(t, "registration fee", installmentLabel(txModel.TransactionTypeRegistrationFee))
}

func TestPastDueReminders_NoMailerIsNoop(t *testing.T) {
	sum, err := NewPastDueReminders(nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReminderSummary{}, sum)
}

func TestStart_RejectsBadSpec(t *testing.T) {
	_, err := Start(Config{ReminderSpec: "not a cron"}, Deps{Mailer: &email.Mailer{}})
	assert.Error(t, err)
}
