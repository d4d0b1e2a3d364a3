package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.streaming_services (
//     id                 TEXT PRIMARY KEY,
//     name               TEXT NOT NULL,
//     monthly_cost_cents BIGINT NOT NULL,
//     active             BOOLEAN NOT NULL DEFAULT TRUE,
//     provider_ids       JSONB,
//     created_at         TIMESTAMPTZ DEFAULT NOW(),
//     updated_at         TIMESTAMPTZ DEFAULT NOW()
// );

// StreamingService is one subscription service from the catalog. The ID is
// the stable provider key ("netflix", "hulu", ...), not a numeric surrogate,
// so availability lookups and catalog rows join without a mapping table.
type StreamingService struct {
	ID               string            `gorm:"primaryKey;column:id" json:"id"`
	Name             string            `gorm:"column:name;type:text;not null" json:"name"`
	MonthlyCostCents uint              `gorm:"column:monthly_cost_cents;not null" json:"monthly_cost_cents"`
	Active           bool              `gorm:"column:active;default:true" json:"active"`
	ProviderIDs      datatypes.JSONMap `gorm:"column:provider_ids" json:"provider_ids,omitempty"`
	CreatedAt        time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (StreamingService) TableName() string {
	return "streaming_services"
}
