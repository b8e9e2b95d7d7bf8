// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"github.com/google/uuid"
)

// MarkExportedRequest: empty ids means "every pending row".
type MarkExportedRequest struct {
	IDs []uuid.UUID `json:"invoice_to_import_ids" validate:"omitempty,max=500,dive,required"`
}

type MarkExportedResponse struct {
	Exported int64 `json:"exported"`
}
