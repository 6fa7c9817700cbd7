package datasource

import (
	"context"

	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func (f *Facade) GetModels(ctx context.Context, includeArchived bool) (Sourced[[]*types.Model], error) {
	const op = "get_models"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Models(includeArchived))
	}
	rows, err := f.models.GetAll(ctx, nil, includeArchived)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.Model { return f.mock.Models(includeArchived) })
	}
	return real(rows)
}

func (f *Facade) GetModel(ctx context.Context, id string) (Sourced[*types.Model], error) {
	const op = "get_model"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Model(id))
	}
	row, err := f.models.GetByID(ctx, nil, id)
	if err != nil {
		return failedRead(f, op, err, false, func() *types.Model { return f.mock.Model(id) })
	}
	return real(row)
}

func (f *Facade) CreateModel(ctx context.Context, row *types.Model) (Sourced[*types.Model], error) {
	const op = "create_model"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddModel(row))
	}
	created, err := f.models.Create(ctx, nil, row)
	if err != nil {
		return failedWrite(f, op, err, func() *types.Model { return f.mock.AddModel(row) })
	}
	return real(created)
}

func (f *Facade) SetModelArchived(ctx context.Context, id string, archived bool) (Sourced[bool], error) {
	const op = "set_model_archived"
	if f.flags.UseMockData() {
		f.mock.SetModelArchived(id, archived)
		return mocked(op, true)
	}
	if err := f.models.SetArchived(ctx, nil, id, archived); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.SetModelArchived(id, archived)
			return true
		})
	}
	return real(true)
}

func (f *Facade) CreateModelVersion(ctx context.Context, row *types.ModelVersion) (Sourced[*types.ModelVersion], error) {
	const op = "create_model_version"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddVersion(row))
	}
	created, err := f.modelVersions.Create(ctx, nil, row)
	if err != nil {
		return failedWrite(f, op, err, func() *types.ModelVersion { return f.mock.AddVersion(row) })
	}
	return real(created)
}

func (f *Facade) GetModelVersions(ctx context.Context, modelID string) (Sourced[[]*types.ModelVersion], error) {
	const op = "get_model_versions"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Versions(modelID))
	}
	rows, err := f.modelVersions.GetByModelID(ctx, nil, modelID)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.ModelVersion { return f.mock.Versions(modelID) })
	}
	return real(rows)
}
