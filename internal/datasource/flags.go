package datasource

import (
	"github.com/iotsphere/iotsphere-backend/internal/utils"
)

// Flags are the two switches governing the facade. Implementations must
// answer with the current value on every call: operators and tests flip
// these at runtime, so caching either at construction time is a bug.
type Flags interface {
	// UseMockData forces every operation to the in-memory snapshot.
	UseMockData() bool
	// FallbackEnabled allows serving the snapshot when the store errors.
	FallbackEnabled() bool
}

// EnvFlags reads USE_MOCK_DATA and MOCK_FALLBACK_ENABLED from the
// environment on each call.
type EnvFlags struct{}

func (EnvFlags) UseMockData() bool {
	return utils.GetEnvAsBool("USE_MOCK_DATA", false, nil)
}

func (EnvFlags) FallbackEnabled() bool {
	return utils.GetEnvAsBool("MOCK_FALLBACK_ENABLED", true, nil)
}

// StaticFlags is a fixed-value implementation for tests and tooling.
type StaticFlags struct {
	Mock     bool
	Fallback bool
}

func (f StaticFlags) UseMockData() bool     { return f.Mock }
func (f StaticFlags) FallbackEnabled() bool { return f.Fallback }
