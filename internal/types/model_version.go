package types

import (
	"time"

	"github.com/google/uuid"
)

// ModelVersion is one trained artifact of a model. Version strings are
// unique within a model.
type ModelVersion struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ModelID   string    `gorm:"column:model_id;not null;index;uniqueIndex:idx_model_version" json:"model_id"`
	Model     *Model    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModelID;references:ID" json:"model,omitempty"`
	Version   string    `gorm:"column:version;not null;uniqueIndex:idx_model_version" json:"version"`
	FilePath  string    `gorm:"column:file_path" json:"file_path"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (ModelVersion) TableName() string { return "model_versions" }
