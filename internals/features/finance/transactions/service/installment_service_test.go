package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/helpers/logger"
)

type seqAllocator struct {
	next  int64
	calls int
	err   error
}

func (a *seqAllocator) NextInvoiceNumber(context.Context) (int64, error) {
	a.calls++
	if a.err != nil {
		return 0, a.err
	}
	n := a.next
	a.next++
	return n, nil
}

func TestSplitPrice_SumsToPrice(t *testing.T) {
	for _, price := range []int64{0, 1, 2, 3, 99, 100, 101, 99999, 100000, 123457} {
		half, rem := SplitPrice(price)
		assert.Equal(t, price, half+rem, "price=%d", price)
		assert.Equal(t, price/2, half, "price=%d", price)
		assert.GreaterOrEqual(t, rem, half)
	}
}

func TestInstallmentDueDates(t *testing.T) {
	start := dbtime.MustParseDate("2025-06-01")
	paid := dbtime.MustParseDate("2025-01-10")

	tests := []struct {
		name string
		in   InstallmentInput
		due1 string
		due2 string
	}{
		{
			name: "derived from start date",
			in:   InstallmentInput{StartDate: start, PaymentDate: paid},
			due1: "2025-05-11",
			due2: "2025-06-08",
		},
		{
			name: "explicit overrides win",
			in: InstallmentInput{
				StartDate:   start,
				Invoice1Due: dbtime.MustParseDate("2025-04-01"),
				Invoice2Due: dbtime.MustParseDate("2025-05-01"),
			},
			due1: "2025-04-01",
			due2: "2025-05-01",
		},
		{
			name: "single override keeps the other derived",
			in:   InstallmentInput{StartDate: start, Invoice2Due: dbtime.MustParseDate("2025-07-15")},
			due1: "2025-05-11",
			due2: "2025-07-15",
		},
		{
			name: "no start date falls back to payment date",
			in:   InstallmentInput{PaymentDate: paid},
			due1: "2025-02-09",
			due2: "2025-03-11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d1, d2 := InstallmentDueDates(tt.in)
			assert.Equal(t, tt.due1, d1.String())
			assert.Equal(t, tt.due2, d2.String())
		})
	}
}

func TestBuildInstallmentPlan_OneThousandDollarClass(t *testing.T) {
	alloc := &seqAllocator{next: 1000}
	in := InstallmentInput{
		CourseCode:  "EMR",
		ClassCode:   "EMR-003",
		ClassTitle:  "Emergency Medical Responder",
		PriceCents:  100000,
		StartDate:   dbtime.MustParseDate("2025-06-01"),
		PaymentDate: dbtime.MustParseDate("2025-03-01"),
		StudentName: "Ada Lovelace",
	}

	lines, err := BuildInstallmentPlan(context.Background(), in, alloc)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, 1, lines[0].Sequence)
	assert.Equal(t, int64(50000), lines[0].AmountCents)
	assert.Equal(t, "2025-05-11", lines[0].DueDate.String())
	assert.Equal(t, int64(1000), lines[0].InvoiceNumber)

	assert.Equal(t, 2, lines[1].Sequence)
	assert.Equal(t, int64(50000), lines[1].AmountCents)
	assert.Equal(t, "2025-06-08", lines[1].DueDate.String())
	assert.Equal(t, int64(1001), lines[1].InvoiceNumber)

	for _, l := range lines {
		assert.Equal(t, "EMR:EMR-003:registration", l.Item)
	}
	assert.Equal(t, "Ada Lovelace, Emergency Medical Responder, Installment 1 of 2, $500.00, due 2025-05-11", lines[0].Memo)
	assert.Equal(t, 2, alloc.calls)
}

func TestBuildInstallmentPlan_OddPriceRemainderOnSecond(t *testing.T) {
	lines, err := BuildInstallmentPlan(context.Background(), InstallmentInput{PriceCents: 100001}, &seqAllocator{next: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), lines[0].AmountCents)
	assert.Equal(t, int64(50001), lines[1].AmountCents)
}

func TestBuildInstallmentPlan_ZeroPriceWarns(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&buf))

	lines, err := BuildInstallmentPlan(ctx, InstallmentInput{CourseCode: "EMR", ClassCode: "EMR-001"}, &seqAllocator{next: 7})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Zero(t, lines[0].AmountCents)
	assert.Zero(t, lines[1].AmountCents)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "zero-amount invoices")
}

func TestBuildInstallmentPlan_AllocatorError(t *testing.T) {
	_, err := BuildInstallmentPlan(context.Background(), InstallmentInput{PriceCents: 10}, &seqAllocator{err: errors.New("db down")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestPreviewInstallmentPlan_NoInvoiceNumbers(t *testing.T) {
	lines := PreviewInstallmentPlan(InstallmentInput{PriceCents: 300, StartDate: dbtime.MustParseDate("2025-06-01")})
	require.Len(t, lines, 2)
	assert.Zero(t, lines[0].InvoiceNumber)
	assert.Zero(t, lines[1].InvoiceNumber)
}

func TestNextInvoiceNumber(t *testing.T) {
	assert.Equal(t, int64(1000), NextInvoiceNumber(nil, 1000))

	low := int64(12)
	assert.Equal(t, int64(1000), NextInvoiceNumber(&low, 1000))

	cur := int64(1041)
	first := NextInvoiceNumber(&cur, 1000)
	second := NextInvoiceNumber(&first, 1000)
	assert.Equal(t, int64(1042), first)
	assert.Equal(t, int64(1043), second)
	assert.Greater(t, second, first)
}
