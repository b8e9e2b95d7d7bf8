// file: internals/features/finance/transactions/service/invoice_number_service.go
package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursedesk_backend/internals/features/finance/transactions/model"
)

const invoiceCounterName = "invoice_number"

// NextInvoiceNumber is the pure rule: max+1, never below floor.
func NextInvoiceNumber(currentMax *int64, floor int64) int64 {
	if currentMax == nil || *currentMax < floor {
		return floor
	}
	return *currentMax + 1
}

// GormInvoiceNumberAllocator increments a single counter row in id_counters.
// The row is seeded from the highest number already issued, after that every
// call is one atomic UPDATE ... RETURNING.
type GormInvoiceNumberAllocator struct {
	DB    *gorm.DB
	Floor int64
}

func NewInvoiceNumberAllocator(db *gorm.DB, floor int64) *GormInvoiceNumberAllocator {
	return &GormInvoiceNumberAllocator{DB: db, Floor: floor}
}

func (a *GormInvoiceNumberAllocator) NextInvoiceNumber(ctx context.Context) (int64, error) {
	var out []int64
	if err := a.DB.WithContext(ctx).Raw(`
		UPDATE id_counters
		SET id_counter_value = GREATEST(id_counter_value + 1, ?),
		    id_counter_updated_at = now()
		WHERE id_counter_name = ?
		RETURNING id_counter_value`, a.Floor, invoiceCounterName).Scan(&out).Error; err != nil {
		return 0, fmt.Errorf("bump invoice counter: %w", err)
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return a.seed(ctx)
}

// seed creates the counter from the current max. Concurrent seeders race on
// the primary key; the loser increments the winner's row instead.
func (a *GormInvoiceNumberAllocator) seed(ctx context.Context) (int64, error) {
	db := a.DB.WithContext(ctx)

	var currentMax *int64
	if err := db.Raw(`
		SELECT MAX(n) FROM (
			SELECT MAX(transaction_invoice_number) AS n FROM transactions
			UNION ALL
			SELECT MAX(invoice_to_import_invoice_number) AS n FROM invoices_to_import
		) s`).Scan(&currentMax).Error; err != nil {
		return 0, fmt.Errorf("read max invoice number: %w", err)
	}

	row := model.IDCounterModel{
		IDCounterName:  invoiceCounterName,
		IDCounterValue: NextInvoiceNumber(currentMax, a.Floor),
	}
	if err := db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "id_counter_name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"id_counter_value":      gorm.Expr("GREATEST(id_counters.id_counter_value + 1, EXCLUDED.id_counter_value)"),
				"id_counter_updated_at": gorm.Expr("now()"),
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "id_counter_value"}}},
	).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("seed invoice counter: %w", err)
	}
	return row.IDCounterValue, nil
}
