package usecase

import "time"

const (
	// DefaultPersistTimeout bounds a single store write.
	DefaultPersistTimeout = 5 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
