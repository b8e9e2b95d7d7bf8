// file: internals/features/audit/logs/model/log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LogModel struct {
	LogID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:log_id" json:"log_id"`
	LogAction    string            `gorm:"type:varchar(64);not null;index;column:log_action" json:"log_action"`
	LogEntity    string            `gorm:"type:varchar(64);not null;column:log_entity" json:"log_entity"`
	LogEntityID  *string           `gorm:"type:varchar(64);index;column:log_entity_id" json:"log_entity_id,omitempty"`
	LogActor     string            `gorm:"type:varchar(254);not null;default:'system';column:log_actor" json:"log_actor"`
	LogDetails   datatypes.JSONMap `gorm:"type:jsonb;column:log_details" json:"log_details,omitempty"`
	LogCreatedAt time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:log_created_at" json:"log_created_at"`
}

func (LogModel) TableName() string { return "logs" }
