package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type TagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Tag) (*types.Tag, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	AssignToModel(ctx context.Context, tx *gorm.DB, modelID string, tagID uuid.UUID) error
	UnassignFromModel(ctx context.Context, tx *gorm.DB, modelID string, tagID uuid.UUID) error
	GetForModel(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Tag) (*types.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *tagRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.Tag{}
	if err := t.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&types.Tag{}).Error
}

func (r *tagRepo) AssignToModel(ctx context.Context, tx *gorm.DB, modelID string, tagID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if modelID == "" || tagID == uuid.Nil {
		return nil
	}
	row := &types.ModelTagAssignment{ModelID: modelID, TagID: tagID}
	return t.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func (r *tagRepo) UnassignFromModel(ctx context.Context, tx *gorm.DB, modelID string, tagID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if modelID == "" || tagID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Where("model_id = ? AND tag_id = ?", modelID, tagID).
		Delete(&types.ModelTagAssignment{}).Error
}

func (r *tagRepo) GetForModel(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.Tag{}
	if modelID == "" {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Joins("JOIN model_tag_assignments mta ON mta.tag_id = tags.id").
		Where("mta.model_id = ?", modelID).
		Order("tags.name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
