package datasource

import "fmt"

// StorageError wraps any persistence failure crossing the facade. The
// store itself never falls back; recovery policy lives entirely here.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
