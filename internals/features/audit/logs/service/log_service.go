// file: internals/features/audit/logs/service/log_service.go
package service

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coursedesk_backend/internals/features/audit/logs/model"
	"coursedesk_backend/internals/helpers/logger"
)

type Entry struct {
	Action   string
	Entity   string
	EntityID string
	Actor    string
	Details  map[string]any
}

func (e Entry) toModel() model.LogModel {
	m := model.LogModel{
		LogAction: e.Action,
		LogEntity: e.Entity,
		LogActor:  e.Actor,
	}
	if m.LogActor == "" {
		m.LogActor = "system"
	}
	if e.EntityID != "" {
		id := e.EntityID
		m.LogEntityID = &id
	}
	if len(e.Details) > 0 {
		m.LogDetails = datatypes.JSONMap(e.Details)
	}
	return m
}

// Record writes an activity log row. Failures are logged and swallowed so the
// operation being audited never fails because of it.
func Record(ctx context.Context, db *gorm.DB, e Entry) {
	row := e.toModel()
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).
			Str("action", e.Action).
			Str("entity", e.Entity).
			Str("entity_id", e.EntityID).
			Msg("activity log write failed")
	}
}
