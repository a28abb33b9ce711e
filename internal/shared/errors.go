package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Surface errors
	ErrNoContext = fmt.Errorf("drawing context unavailable")

	// Lifecycle errors
	ErrAlreadyMounted = fmt.Errorf("renderer already mounted")

	// Snapshot errors
	ErrSnapshotCanceled = fmt.Errorf("snapshot canceled")
)
