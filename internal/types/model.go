package types

import (
	"time"
)

// Model is a monitored ML model. IDs are caller-supplied slugs
// (e.g. "water-heater-thermal-model") so metric producers can reference
// a model without a lookup round-trip.
type Model struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Archived    bool      `gorm:"column:archived;not null;default:false" json:"archived"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`

	Versions []*ModelVersion `gorm:"foreignKey:ModelID;references:ID;constraint:OnDelete:CASCADE" json:"versions,omitempty"`
	Tags     []*Tag          `gorm:"many2many:model_tag_assignments;joinForeignKey:ModelID;joinReferences:TagID" json:"tags,omitempty"`
}

func (Model) TableName() string { return "models" }
