// file: internals/features/finance/transactions/service/installment_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/helpers/logger"
)

const (
	InstallmentCount = 2

	dueBeforeStartDays    = 21
	dueAfterStartDays     = 7
	fallbackFirstDueDays  = 30
	fallbackSecondDueDays = 60
)

// InstallmentInput is everything the plan needs from the class, the course
// and the checkout. Zero dates mean "not set".
type InstallmentInput struct {
	CourseCode  string
	ClassCode   string
	ClassTitle  string
	PriceCents  int64
	StartDate   dbtime.Date
	Invoice1Due dbtime.Date
	Invoice2Due dbtime.Date
	PaymentDate dbtime.Date
	StudentName string
}

// InstallmentLine is one tuition invoice.
type InstallmentLine struct {
	Sequence      int         `json:"invoice_sequence"`
	InvoiceNumber int64       `json:"invoice_number"`
	AmountCents   int64       `json:"amount_cents"`
	DueDate       dbtime.Date `json:"due_date"`
	Item          string      `json:"item"`
	Memo          string      `json:"memo"`
}

// InvoiceNumberAllocator hands out globally unique, strictly increasing
// invoice numbers.
type InvoiceNumberAllocator interface {
	NextInvoiceNumber(ctx context.Context) (int64, error)
}

// SplitPrice returns floor(price/2) and the remainder, which always sum to price.
func SplitPrice(priceCents int64) (half, remainder int64) {
	half = priceCents / 2
	if priceCents < 0 && priceCents%2 != 0 {
		half-- // floor, not truncation
	}
	return half, priceCents - half
}

// InstallmentDueDates resolves the two due dates. Explicit overrides win per
// invoice; otherwise they derive from the class start date, and without a
// start date from the payment date.
func InstallmentDueDates(in InstallmentInput) (dbtime.Date, dbtime.Date) {
	var due1, due2 dbtime.Date
	switch {
	case !in.StartDate.IsZero():
		due1 = in.StartDate.AddDays(-dueBeforeStartDays)
		due2 = in.StartDate.AddDays(dueAfterStartDays)
	default:
		paid := in.PaymentDate
		if paid.IsZero() {
			paid = dbtime.Today()
		}
		due1 = paid.AddDays(fallbackFirstDueDays)
		due2 = paid.AddDays(fallbackSecondDueDays)
	}
	if !in.Invoice1Due.IsZero() {
		due1 = in.Invoice1Due
	}
	if !in.Invoice2Due.IsZero() {
		due2 = in.Invoice2Due
	}
	return due1, due2
}

// InstallmentItem is the accounting item string for a class.
func InstallmentItem(courseCode, classCode string) string {
	return fmt.Sprintf("%s:%s:registration", courseCode, classCode)
}

func installmentMemo(in InstallmentInput, seq int, amount int64, due dbtime.Date) string {
	parts := make([]string, 0, 5)
	if s := strings.TrimSpace(in.StudentName); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(in.ClassTitle); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts,
		fmt.Sprintf("Installment %d of %d", seq, InstallmentCount),
		helper.FormatCents(amount),
	)
	if !due.IsZero() {
		parts = append(parts, "due "+due.String())
	}
	return strings.Join(parts, ", ")
}

// PreviewInstallmentPlan builds both lines without invoice numbers.
func PreviewInstallmentPlan(in InstallmentInput) []InstallmentLine {
	half, remainder := SplitPrice(in.PriceCents)
	due1, due2 := InstallmentDueDates(in)
	item := InstallmentItem(in.CourseCode, in.ClassCode)

	amounts := [InstallmentCount]int64{half, remainder}
	dues := [InstallmentCount]dbtime.Date{due1, due2}

	lines := make([]InstallmentLine, 0, InstallmentCount)
	for i := 0; i < InstallmentCount; i++ {
		seq := i + 1
		lines = append(lines, InstallmentLine{
			Sequence:    seq,
			AmountCents: amounts[i],
			DueDate:     dues[i],
			Item:        item,
			Memo:        installmentMemo(in, seq, amounts[i], dues[i]),
		})
	}
	return lines
}

// BuildInstallmentPlan produces the two tuition invoices and allocates an
// invoice number for each, in sequence order. A zero price still produces
// zero-amount invoices.
func BuildInstallmentPlan(ctx context.Context, in InstallmentInput, alloc InvoiceNumberAllocator) ([]InstallmentLine, error) {
	if in.PriceCents <= 0 {
		log := logger.FromContext(ctx)
		log.Warn().
			Str("course_code", in.CourseCode).
			Str("class_code", in.ClassCode).
			Int64("price_cents", in.PriceCents).
			Msg("class has no price, generating zero-amount invoices")
	}

	lines := PreviewInstallmentPlan(in)
	for i := range lines {
		n, err := alloc.NextInvoiceNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocate invoice number %d: %w", lines[i].Sequence, err)
		}
		lines[i].InvoiceNumber = n
	}
	return lines, nil
}
