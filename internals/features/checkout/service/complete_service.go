// file: internals/features/checkout/service/complete_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	classModel "coursedesk_backend/internals/features/catalog/classes/model"
	classSvc "coursedesk_backend/internals/features/catalog/classes/service"
	enrSvc "coursedesk_backend/internals/features/finance/enrollments/service"
	payModel "coursedesk_backend/internals/features/finance/payments/model"
	paySvc "coursedesk_backend/internals/features/finance/payments/service"
	txModel "coursedesk_backend/internals/features/finance/transactions/model"
	txSvc "coursedesk_backend/internals/features/finance/transactions/service"
	"coursedesk_backend/internals/features/integrations/email"
	"coursedesk_backend/internals/features/integrations/stripegw"
	studentModel "coursedesk_backend/internals/features/people/students/model"
	studentSvc "coursedesk_backend/internals/features/people/students/service"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/helpers/logger"
)

// Completion describes what a succeeded PaymentIntent produced.
type Completion struct {
	PaymentIntentID string
	AlreadyDone     bool

	Student        studentModel.StudentModel
	StudentCreated bool
	Class          classModel.ClassModel
	EnrollmentID   uuid.UUID
	PaymentID      uuid.UUID
	AmountCents    int64
	ReceiptURL     string

	// empty when the enrollment already carried a tuition plan
	Plan []txSvc.InstallmentLine
}

// CompleteCheckout turns a succeeded registration-fee PaymentIntent into
// student, enrollment, ledger, payment and invoice-export rows, all in one
// transaction. A PaymentIntent is only ever completed once.
func (s *Service) CompleteCheckout(ctx context.Context, pi *stripegw.EventPaymentIntent) (*Completion, error) {
	meta, err := DecodeMeta(pi.Metadata)
	if err != nil {
		return nil, err
	}

	done, err := s.paymentRecorded(ctx, s.DB, pi.ID)
	if err != nil {
		return nil, err
	}
	if done {
		return &Completion{PaymentIntentID: pi.ID, AlreadyDone: true}, nil
	}

	out := &Completion{PaymentIntentID: pi.ID, AmountCents: pi.AmountCents}
	if s.Processor != nil && pi.LatestChargeID != "" {
		if url, err := s.Processor.ReceiptURL(ctx, pi.LatestChargeID); err != nil {
			log := logger.FromContext(ctx)
			log.Warn().Err(err).Str("payment_intent", pi.ID).Msg("receipt url lookup failed")
		} else {
			out.ReceiptURL = url
		}
	}

	now := s.Now()
	today := dbtime.DateOf(dbtime.ToBusinessTime(now))

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// re-check under the transaction; the unique index on the payment
		// row is the final guard
		if done, err := s.paymentRecorded(ctx, tx, pi.ID); err != nil || done {
			if done {
				out.AlreadyDone = true
			}
			return err
		}

		var cls classModel.ClassModel
		if err := tx.Unscoped().Where("class_id = ?", meta.ClassID).Take(&cls).Error; err != nil {
			return helper.FromDBError(err, "class")
		}
		out.Class = cls

		st, created, err := studentSvc.FindOrCreateByEmail(ctx, tx, studentSvc.Contact{
			Email: meta.Email, FirstName: meta.FirstName, LastName: meta.LastName, Phone: meta.Phone,
		})
		if err != nil {
			return err
		}
		out.Student, out.StudentCreated = *st, created

		enr, _, err := enrSvc.FindOrCreate(ctx, tx, st.StudentID, cls.ClassID, now)
		if err != nil {
			return err
		}
		out.EnrollmentID = enr.EnrollmentID

		regFee := txModel.TransactionModel{
			TransactionEnrollmentID:          enr.EnrollmentID,
			TransactionType:                  txModel.TransactionTypeRegistrationFee,
			TransactionStatus:                txModel.TransactionStatusPaid,
			TransactionAmountDueCents:        pi.AmountCents,
			TransactionDueDate:               today,
			TransactionStripePaymentIntentID: &pi.ID,
			TransactionPaidAt:                &now,
		}
		if err := tx.Create(&regFee).Error; err != nil {
			return err
		}

		var tuitionCount int64
		if err := tx.Model(&txModel.TransactionModel{}).
			Where("transaction_enrollment_id = ? AND transaction_type IN ?", enr.EnrollmentID,
				[]txModel.TransactionType{txModel.TransactionTypeTuitionA, txModel.TransactionTypeTuitionB}).
			Count(&tuitionCount).Error; err != nil {
			return err
		}
		if tuitionCount == 0 {
			alloc := txSvc.NewInvoiceNumberAllocator(tx, s.InvoiceNumberFloor)
			plan, err := txSvc.BuildInstallmentPlan(ctx, classSvc.InstallmentInputFor(cls, today, meta.FullName()), alloc)
			if err != nil {
				return err
			}
			tuition := TuitionTransactions(enr.EnrollmentID, plan)
			if err := tx.Create(&tuition).Error; err != nil {
				return err
			}
			out.Plan = plan
		} else {
			log := logger.FromContext(ctx)
			log.Warn().Str("enrollment_id", enr.EnrollmentID.String()).Str("payment_intent", pi.ID).
				Msg("enrollment already has a tuition plan, recording payment only")
		}

		payment := payModel.PaymentModel{
			PaymentEnrollmentID:          enr.EnrollmentID,
			PaymentAmountCents:           pi.AmountCents,
			PaymentCurrency:              currencyOf(pi),
			PaymentPaidAt:                now,
			PaymentStripePaymentIntentID: pi.ID,
			PaymentMeta: map[string]any{
				"class_code": cls.ClassCode,
				"charge_id":  pi.LatestChargeID,
				"purpose":    PurposeRegistrationFee,
			},
		}
		if out.ReceiptURL != "" {
			payment.PaymentStripeReceiptURL = &out.ReceiptURL
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		out.PaymentID = payment.PaymentID

		if len(out.Plan) > 0 {
			rows := paySvc.InvoicesToImport(payment.PaymentID, enr.EnrollmentID,
				paySvc.Customer{Name: st.FullName(), Email: st.StudentEmail}, out.Plan)
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			// lost the race against a concurrent delivery of the same intent
			if done, rerr := s.paymentRecorded(ctx, s.DB, pi.ID); rerr == nil && done {
				return &Completion{PaymentIntentID: pi.ID, AlreadyDone: true}, nil
			}
		}
		return nil, err
	}
	if out.AlreadyDone {
		return &Completion{PaymentIntentID: pi.ID, AlreadyDone: true}, nil
	}

	s.afterCompletion(context.WithoutCancel(ctx), out)
	return out, nil
}

// TuitionTransactions maps the installment plan to pending ledger rows.
func TuitionTransactions(enrollmentID uuid.UUID, plan []txSvc.InstallmentLine) []txModel.TransactionModel {
	return lo.Map(plan, func(l txSvc.InstallmentLine, _ int) txModel.TransactionModel {
		typ := txModel.TransactionTypeTuitionA
		if l.Sequence == 2 {
			typ = txModel.TransactionTypeTuitionB
		}
		return txModel.TransactionModel{
			TransactionEnrollmentID:    enrollmentID,
			TransactionType:            typ,
			TransactionStatus:          txModel.TransactionStatusPending,
			TransactionAmountDueCents:  l.AmountCents,
			TransactionDueDate:         l.DueDate,
			TransactionInvoiceNumber:   lo.ToPtr(l.InvoiceNumber),
			TransactionInvoiceSequence: lo.ToPtr(l.Sequence),
			TransactionItem:            lo.ToPtr(l.Item),
			TransactionMemo:            lo.ToPtr(l.Memo),
		}
	})
}

func currencyOf(pi *stripegw.EventPaymentIntent) string {
	if pi.Currency == "" {
		return currencyUSD
	}
	return pi.Currency
}

func (s *Service) paymentRecorded(ctx context.Context, db *gorm.DB, paymentIntentID string) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&payModel.PaymentModel{}).
		Where("payment_stripe_payment_intent_id = ?", paymentIntentID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// afterCompletion runs the best-effort side effects once the ledger is
// committed. Failures are logged, never returned.
func (s *Service) afterCompletion(ctx context.Context, c *Completion) {
	s.audit(ctx, logSvc.Entry{
		Action:   "checkout.completed",
		Entity:   "enrollment",
		EntityID: c.EnrollmentID.String(),
		Details: map[string]any{
			"payment_intent":  c.PaymentIntentID,
			"class_code":      c.Class.ClassCode,
			"student_email":   c.Student.StudentEmail,
			"student_created": c.StudentCreated,
			"amount_cents":    c.AmountCents,
			"invoice_numbers": lo.Map(c.Plan, func(l txSvc.InstallmentLine, _ int) int64 { return l.InvoiceNumber }),
		},
	})

	if s.Mailer == nil {
		return
	}
	log := logger.FromContext(ctx)

	msg, err := email.EnrollmentConfirmation(c.Student.StudentEmail, ConfirmationData(c))
	if err != nil {
		log.Error().Err(err).Msg("render enrollment confirmation")
		return
	}
	res := s.Mailer.Send(ctx, msg)
	s.audit(ctx, logSvc.Entry{
		Action: "email.enrollment_confirmation", Entity: "enrollment", EntityID: c.EnrollmentID.String(),
		Details: map[string]any{"success": res.Success, "attempts": res.Attempts, "message_id": res.MessageID},
	})

	if s.AdminNotifyEmail == "" {
		return
	}
	note, err := email.PaymentReceipt(s.AdminNotifyEmail, email.PaymentReceiptData{
		StudentName: c.Student.FullName() + " <" + c.Student.StudentEmail + ">",
		ClassTitle:  c.Class.ClassTitle,
		AmountCents: c.AmountCents,
		Description: "Registration fee for " + c.Class.ClassCode,
		ReceiptURL:  c.ReceiptURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("render admin payment notice")
		return
	}
	s.Mailer.Send(ctx, note)
}

func ConfirmationData(c *Completion) email.EnrollmentConfirmationData {
	d := email.EnrollmentConfirmationData{
		StudentName: c.Student.FullName(),
		ClassTitle:  c.Class.ClassTitle,
		ClassCode:   c.Class.ClassCode,
		StartDate:   c.Class.ClassStartDate.String(),
		AmountCents: c.AmountCents,
		ReceiptURL:  c.ReceiptURL,
		Installments: lo.Map(c.Plan, func(l txSvc.InstallmentLine, _ int) email.InstallmentRow {
			return email.InstallmentRow{InvoiceNumber: l.InvoiceNumber, AmountCents: l.AmountCents, DueDate: l.DueDate.String()}
		}),
	}
	if c.Class.ClassLocation != nil {
		d.Location = *c.Class.ClassLocation
	}
	return d
}

// PaymentFailed only leaves a trace; nothing in the ledger changes.
func (s *Service) PaymentFailed(ctx context.Context, pi *stripegw.EventPaymentIntent) {
	log := logger.FromContext(ctx)
	log.Warn().Str("payment_intent", pi.ID).Str("reason", pi.FailureReason).
		Str("class_code", pi.Metadata[MetaClassCode]).Msg("payment failed")

	s.audit(ctx, logSvc.Entry{
		Action: "checkout.payment_failed", Entity: "payment_intent", EntityID: pi.ID,
		Details: map[string]any{
			"reason":        pi.FailureReason,
			"class_code":    pi.Metadata[MetaClassCode],
			"student_email": pi.Metadata[MetaStudentEmail],
		},
	})
}

var ErrRefundTargetMissing = errors.New("no registration-fee transaction for refunded payment intent")

// ChargeRefunded marks the registration-fee transaction refunded once the
// charge is fully refunded. Partial refunds are only logged.
func (s *Service) ChargeRefunded(ctx context.Context, ch *stripegw.EventCharge) (bool, error) {
	log := logger.FromContext(ctx)
	if ch.PaymentIntentID == "" {
		return false, nil
	}
	if !ch.Refunded {
		log.Info().Str("charge", ch.ID).Int64("amount_refunded", ch.AmountRefunded).Msg("partial refund, ledger unchanged")
		return false, nil
	}

	var t txModel.TransactionModel
	err := s.DB.WithContext(ctx).
		Where("transaction_stripe_payment_intent_id = ? AND transaction_type = ?", ch.PaymentIntentID, txModel.TransactionTypeRegistrationFee).
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrRefundTargetMissing
	}
	if err != nil {
		return false, err
	}
	if t.TransactionStatus == txModel.TransactionStatusRefunded {
		return false, nil
	}

	if _, err := txSvc.TransitionStatus(ctx, s.DB, t.TransactionID, txModel.TransactionStatusRefunded, s.Now()); err != nil {
		return false, err
	}
	s.audit(ctx, logSvc.Entry{
		Action: "transaction.refunded", Entity: "transaction", EntityID: t.TransactionID.String(),
		Details: map[string]any{"payment_intent": ch.PaymentIntentID, "charge": ch.ID, "amount_refunded": ch.AmountRefunded},
	})
	return true, nil
}
