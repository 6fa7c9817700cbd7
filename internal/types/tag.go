package types

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Color     string    `gorm:"column:color" json:"color"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// ModelTagAssignment is the models<->tags join table. Declared explicitly
// so cascades and the composite key survive automigration.
type ModelTagAssignment struct {
	ModelID string    `gorm:"column:model_id;primaryKey" json:"model_id"`
	TagID   uuid.UUID `gorm:"column:tag_id;type:uuid;primaryKey" json:"tag_id"`
	Model   *Model    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModelID;references:ID" json:"model,omitempty"`
	Tag     *Tag      `gorm:"constraint:OnDelete:CASCADE;foreignKey:TagID;references:ID" json:"tag,omitempty"`
}

func (ModelTagAssignment) TableName() string { return "model_tag_assignments" }
