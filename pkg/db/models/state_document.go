package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StateDocument is a keyed JSON document owned by a single user. The
// customization and per-character override records live here.
type StateDocument struct {
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;primaryKey"`
	DocKey    string          `gorm:"column:doc_key;primaryKey"`
	Value     json.RawMessage `gorm:"column:value;type:jsonb;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
