package types

import "errors"

// Domain errors for type validation
var (
	// Shard errors
	ErrEmptyShardID       = errors.New("shard ID cannot be empty")
	ErrShardIDTooLong     = errors.New("shard ID too long")
	ErrInvalidShardID     = errors.New("shard ID contains invalid characters")
	ErrInvalidShardType   = errors.New("invalid shard type")
	ErrEmptyContent       = errors.New("content cannot be empty")
	ErrNegativeTokenCount = errors.New("token count cannot be negative")

	// Option errors
	ErrInvalidStrategy    = errors.New("invalid strategy")
	ErrInvalidTokenBudget = errors.New("max tokens per shard must be positive")
)
