// file: internals/features/finance/payments/service/gateway_event_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursedesk_backend/internals/features/finance/payments/model"
)

// ReceiveEvent logs a webhook delivery. Redeliveries of an event that was
// already processed or ignored come back with done=true and must be
// acknowledged without reprocessing; failed events are retried.
func ReceiveEvent(ctx context.Context, db *gorm.DB, externalID, eventType string, ref *string, payload []byte) (ev *model.PaymentGatewayEventModel, done bool, err error) {
	row := model.PaymentGatewayEventModel{
		GatewayEventExternalID:  externalID,
		GatewayEventType:        eventType,
		GatewayEventExternalRef: ref,
		GatewayEventPayload:     datatypes.JSON(payload),
		GatewayEventStatus:      model.GatewayEventStatusReceived,
		GatewayEventTryCount:    1,
		GatewayEventReceivedAt:  time.Now(),
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "gateway_event_external_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"gateway_event_try_count": gorm.Expr("payment_gateway_events.gateway_event_try_count + 1"),
			}),
		}, clause.Returning{}).
		Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}

	done = row.GatewayEventStatus == model.GatewayEventStatusProcessed ||
		row.GatewayEventStatus == model.GatewayEventStatusIgnored
	return &row, done, nil
}

// FinishEvent records the outcome of handling a delivery.
func FinishEvent(ctx context.Context, db *gorm.DB, id uuid.UUID, status model.GatewayEventStatus, cause error) error {
	upd := map[string]any{
		"gateway_event_status":       status,
		"gateway_event_processed_at": time.Now(),
		"gateway_event_error":        nil,
	}
	if cause != nil {
		upd["gateway_event_error"] = cause.Error()
	}
	return db.WithContext(ctx).
		Model(&model.PaymentGatewayEventModel{}).
		Where("gateway_event_id = ?", id).
		Updates(upd).Error
}
