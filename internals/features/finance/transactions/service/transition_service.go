// file: internals/features/finance/transactions/service/transition_service.go
package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"coursedesk_backend/internals/features/finance/transactions/model"
)

var allowedTransitions = map[model.TransactionStatus][]model.TransactionStatus{
	model.TransactionStatusPending: {model.TransactionStatusPaid, model.TransactionStatusCancelled},
	model.TransactionStatusPaid:    {model.TransactionStatusRefunded},
}

func CanTransition(from, to model.TransactionStatus) bool {
	return lo.Contains(allowedTransitions[from], to)
}

// ValidateTransition returns a 409 for moves the ledger does not allow.
func ValidateTransition(from, to model.TransactionStatus) error {
	if !to.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown transaction status: "+string(to))
	}
	if !CanTransition(from, to) {
		return fiber.NewError(fiber.StatusConflict, "cannot move transaction from "+string(from)+" to "+string(to))
	}
	return nil
}
