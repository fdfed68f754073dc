package usecase

import "time"

const (
	// MaxNumberAttempts bounds the retry loop when picking a random
	// account number; the EE1000-EE9999 space is small enough that a
	// full ledger would otherwise spin forever.
	MaxNumberAttempts = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
