package port

import "errors"

// Storage-level sentinels. Adapters wrap them, orchestrators match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrUniqueViolation = errors.New("unique violation")
	ErrStatusConflict  = errors.New("status conflict")
)
