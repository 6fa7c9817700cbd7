package datasource

import (
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/metrics"
	"github.com/iotsphere/iotsphere-backend/internal/mockdata"
	"github.com/iotsphere/iotsphere-backend/internal/repos"
)

// Sourced carries facade data together with its provenance. Every facade
// operation returns one, so the mock/real indicator cannot be dropped
// between here and the API boundary.
type Sourced[T any] struct {
	Data T
	Mock bool
}

// Facade is the single data-access surface for the service layer: every
// read and write goes against the store first, with the mock snapshot
// standing in when the store is forced off or fails (and fallback is on).
type Facade struct {
	log   *logger.Logger
	flags Flags
	mock  *mockdata.Snapshot

	models        repos.ModelRepo
	modelVersions repos.ModelVersionRepo
	modelMetrics  repos.ModelMetricRepo
	alertRules    repos.AlertRuleRepo
	alertEvents   repos.AlertEventRepo
	devices       repos.DeviceRepo
	readings      repos.DeviceReadingRepo
	tags          repos.TagRepo
}

func NewFacade(
	baseLog *logger.Logger,
	flags Flags,
	mock *mockdata.Snapshot,
	models repos.ModelRepo,
	modelVersions repos.ModelVersionRepo,
	modelMetrics repos.ModelMetricRepo,
	alertRules repos.AlertRuleRepo,
	alertEvents repos.AlertEventRepo,
	devices repos.DeviceRepo,
	readings repos.DeviceReadingRepo,
	tags repos.TagRepo,
) *Facade {
	return &Facade{
		log:           baseLog.With("component", "DataSourceFacade"),
		flags:         flags,
		mock:          mock,
		models:        models,
		modelVersions: modelVersions,
		modelMetrics:  modelMetrics,
		alertRules:    alertRules,
		alertEvents:   alertEvents,
		devices:       devices,
		readings:      readings,
		tags:          tags,
	}
}

func mocked[T any](op string, data T) (Sourced[T], error) {
	metrics.MockServes.WithLabelValues(op).Inc()
	return Sourced[T]{Data: data, Mock: true}, nil
}

func real[T any](data T) (Sourced[T], error) {
	return Sourced[T]{Data: data}, nil
}

// failedRead resolves a store error on a read path. Fallback enabled:
// serve the snapshot. Disabled: degrading reads answer empty+mock, all
// others surface the StorageError.
func failedRead[T any](f *Facade, op string, err error, degrade bool, fromMock func() T) (Sourced[T], error) {
	f.log.Error("Store read failed", "op", op, "error", err)
	metrics.StoreFallbacks.WithLabelValues(op).Inc()
	if f.flags.FallbackEnabled() {
		return mocked(op, fromMock())
	}
	if degrade {
		var zero T
		return Sourced[T]{Data: zero, Mock: true}, nil
	}
	return Sourced[T]{}, &StorageError{Op: op, Err: err}
}

// failedWrite resolves a store error on a write path. Unlike reads, a
// write with fallback disabled always raises.
func failedWrite[T any](f *Facade, op string, err error, fromMock func() T) (Sourced[T], error) {
	f.log.Error("Store write failed", "op", op, "error", err)
	metrics.StoreFallbacks.WithLabelValues(op).Inc()
	if f.flags.FallbackEnabled() {
		return mocked(op, fromMock())
	}
	return Sourced[T]{}, &StorageError{Op: op, Err: err}
}
