package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentConfirmation_EscapesUserData(t *testing.T) {
	msg, err := EnrollmentConfirmation("a@b.co", EnrollmentConfirmationData{
		StudentName: `<script>alert("x")</script>`,
		ClassTitle:  "EMT & Friends",
		ClassCode:   "EMR-003",
		StartDate:   "2025-06-01",
		AmountCents: 25000,
		ReceiptURL:  `javascript:alert(1)`,
		Installments: []InstallmentRow{
			{InvoiceNumber: 1000, AmountCents: 50000, DueDate: "2025-05-11"},
			{InvoiceNumber: 1001, AmountCents: 50000, DueDate: "2025-06-08"},
		},
	})
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.HTML, "EMT &amp; Friends")
	assert.NotContains(t, msg.HTML, `href="javascript:`)
	assert.Contains(t, msg.HTML, "#1000")
	assert.Contains(t, msg.HTML, "$500.00")
	assert.Contains(t, msg.HTML, "$250.00")
	assert.Equal(t, []string{"a@b.co"}, msg.To)
	assert.Equal(t, "Enrollment confirmed: EMT & Friends", msg.Subject)
}

func TestPastDueReminder(t *testing.T) {
	msg, err := PastDueReminder("a@b.co", PastDueReminderData{
		StudentName:   "Ada",
		ClassTitle:    "Wilderness First Aid",
		Description:   "tuition installment 1",
		DueDate:       "2025-05-11",
		AmountCents:   50000,
		InvoiceNumber: 1000,
	})
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "was due on <strong>2025-05-11</strong>")
	assert.Contains(t, msg.HTML, "invoice #1000")
}

func TestPaymentReceipt(t *testing.T) {
	msg, err := PaymentReceipt("a@b.co", PaymentReceiptData{StudentName: "Ada", ClassTitle: "CPR", AmountCents: 1999})
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "$19.99")
	assert.NotContains(t, msg.HTML, "View your receipt")
}
