package datasource

import (
	"context"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func (f *Facade) GetTags(ctx context.Context) (Sourced[[]*types.Tag], error) {
	const op = "get_tags"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Tags())
	}
	rows, err := f.tags.GetAll(ctx, nil)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.Tag { return f.mock.Tags() })
	}
	return real(rows)
}

func (f *Facade) CreateTag(ctx context.Context, row *types.Tag) (Sourced[*types.Tag], error) {
	const op = "create_tag"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddTag(row))
	}
	created, err := f.tags.Create(ctx, nil, row)
	if err != nil {
		return failedWrite(f, op, err, func() *types.Tag { return f.mock.AddTag(row) })
	}
	return real(created)
}

func (f *Facade) DeleteTag(ctx context.Context, id uuid.UUID) (Sourced[bool], error) {
	const op = "delete_tag"
	if f.flags.UseMockData() {
		f.mock.DeleteTag(id)
		return mocked(op, true)
	}
	if err := f.tags.Delete(ctx, nil, id); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.DeleteTag(id)
			return true
		})
	}
	return real(true)
}

func (f *Facade) AssignTag(ctx context.Context, modelID string, tagID uuid.UUID) (Sourced[bool], error) {
	const op = "assign_tag"
	if f.flags.UseMockData() {
		f.mock.AssignTag(modelID, tagID)
		return mocked(op, true)
	}
	if err := f.tags.AssignToModel(ctx, nil, modelID, tagID); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.AssignTag(modelID, tagID)
			return true
		})
	}
	return real(true)
}

func (f *Facade) UnassignTag(ctx context.Context, modelID string, tagID uuid.UUID) (Sourced[bool], error) {
	const op = "unassign_tag"
	if f.flags.UseMockData() {
		f.mock.UnassignTag(modelID, tagID)
		return mocked(op, true)
	}
	if err := f.tags.UnassignFromModel(ctx, nil, modelID, tagID); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.UnassignTag(modelID, tagID)
			return true
		})
	}
	return real(true)
}

func (f *Facade) GetTagsForModel(ctx context.Context, modelID string) (Sourced[[]*types.Tag], error) {
	const op = "get_tags_for_model"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.TagsForModel(modelID))
	}
	rows, err := f.tags.GetForModel(ctx, nil, modelID)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.Tag { return f.mock.TagsForModel(modelID) })
	}
	return real(rows)
}
