// file: internals/jobs/reminders.go
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	txModel "coursedesk_backend/internals/features/finance/transactions/model"
	"coursedesk_backend/internals/features/integrations/email"
	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/helpers/logger"
)

const reminderBatch = 200

// PastDueRow is one unpaid, overdue tuition invoice that has not been
// reminded yet.
type PastDueRow struct {
	TransactionID             uuid.UUID
	TransactionEnrollmentID   uuid.UUID
	TransactionType           txModel.TransactionType
	TransactionAmountDueCents int64
	TransactionDueDate        dbtime.Date
	TransactionInvoiceNumber  *int64
	StudentEmail              string
	StudentFirstName          string
	StudentLastName           string
	ClassTitle                string
}

type ReminderSummary struct {
	Candidates int
	Sent       int
	Failed     int
}

type PastDueReminders struct {
	DB     *gorm.DB
	Mailer *email.Mailer
	Now    func() time.Time
}

func NewPastDueReminders(db *gorm.DB, m *email.Mailer) *PastDueReminders {
	return &PastDueReminders{DB: db, Mailer: m, Now: time.Now}
}

func installmentLabel(t txModel.TransactionType) string {
	switch t {
	case txModel.TransactionTypeTuitionA:
		return "tuition installment 1 of 2"
	case txModel.TransactionTypeTuitionB:
		return "tuition installment 2 of 2"
	}
	return strings.ReplaceAll(string(t), "_", " ")
}

// ReminderData fills the reminder template for one row.
func ReminderData(r PastDueRow) email.PastDueReminderData {
	d := email.PastDueReminderData{
		StudentName: strings.TrimSpace(r.StudentFirstName + " " + r.StudentLastName),
		ClassTitle:  r.ClassTitle,
		Description: installmentLabel(r.TransactionType),
		DueDate:     r.TransactionDueDate.String(),
		AmountCents: r.TransactionAmountDueCents,
	}
	if r.TransactionInvoiceNumber != nil {
		d.InvoiceNumber = *r.TransactionInvoiceNumber
	}
	return d
}

func (j *PastDueReminders) candidates(ctx context.Context, today dbtime.Date) ([]PastDueRow, error) {
	var rows []PastDueRow
	err := j.DB.WithContext(ctx).Raw(`
		SELECT t.transaction_id, t.transaction_enrollment_id, t.transaction_type,
		       t.transaction_amount_due_cents, t.transaction_due_date, t.transaction_invoice_number,
		       s.student_email, s.student_first_name, s.student_last_name,
		       cl.class_title
		FROM transactions t
		JOIN enrollments e ON e.enrollment_id = t.transaction_enrollment_id
		JOIN students s    ON s.student_id = e.enrollment_student_id
		JOIN classes cl    ON cl.class_id = e.enrollment_class_id
		WHERE t.transaction_status = ?
		  AND t.transaction_type IN ?
		  AND t.transaction_due_date < ?
		  AND t.transaction_amount_due_cents > 0
		  AND t.transaction_reminder_sent_at IS NULL
		ORDER BY t.transaction_due_date ASC
		LIMIT ?`,
		txModel.TransactionStatusPending,
		[]txModel.TransactionType{txModel.TransactionTypeTuitionA, txModel.TransactionTypeTuitionB},
		today, reminderBatch,
	).Scan(&rows).Error
	return rows, err
}

// claim marks the reminder as sent before sending, so overlapping runs never
// email the same invoice twice.
func (j *PastDueReminders) claim(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := j.DB.WithContext(ctx).Model(&txModel.TransactionModel{}).
		Where("transaction_id = ? AND transaction_reminder_sent_at IS NULL", id).
		Update("transaction_reminder_sent_at", at)
	return res.RowsAffected == 1, res.Error
}

func (j *PastDueReminders) release(ctx context.Context, id uuid.UUID) error {
	return j.DB.WithContext(ctx).Model(&txModel.TransactionModel{}).
		Where("transaction_id = ?", id).
		Update("transaction_reminder_sent_at", nil).Error
}

// Run sends at most one reminder per overdue tuition invoice.
func (j *PastDueReminders) Run(ctx context.Context) (ReminderSummary, error) {
	var sum ReminderSummary
	if j.Mailer == nil {
		return sum, nil
	}
	log := logger.FromContext(ctx)

	now := j.Now()
	rows, err := j.candidates(ctx, dbtime.DateOf(dbtime.ToBusinessTime(now)))
	if err != nil {
		return sum, fmt.Errorf("list past-due transactions: %w", err)
	}
	sum.Candidates = len(rows)

	for _, r := range rows {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		ok, err := j.claim(ctx, r.TransactionID, now)
		if err != nil {
			return sum, fmt.Errorf("claim reminder %s: %w", r.TransactionID, err)
		}
		if !ok {
			continue
		}

		msg, err := email.PastDueReminder(r.StudentEmail, ReminderData(r))
		if err == nil {
			if res := j.Mailer.Send(ctx, msg); !res.Success {
				err = res.Err
			}
		}
		if err != nil {
			sum.Failed++
			log.Warn().Err(err).Str("transaction_id", r.TransactionID.String()).Msg("past-due reminder not sent")
			if rerr := j.release(ctx, r.TransactionID); rerr != nil {
				log.Error().Err(rerr).Str("transaction_id", r.TransactionID.String()).Msg("release reminder claim")
			}
			continue
		}

		sum.Sent++
		logSvc.Record(ctx, j.DB, logSvc.Entry{
			Action: "email.past_due_reminder", Entity: "transaction", EntityID: r.TransactionID.String(),
			Details: map[string]any{"to": r.StudentEmail, "due_date": r.TransactionDueDate.String()},
		})
	}
	return sum, nil
}
