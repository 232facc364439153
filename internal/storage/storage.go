package storage

import (
	"context"
	"time"

	"github.com/dshills/docshard-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying shard plans
type Storage interface {
	// Plan operations
	SavePlan(ctx context.Context, record *PlanRecord) error
	GetPlan(ctx context.Context, planID string) (*PlanRecord, error)
	ListPlans(ctx context.Context, limit int) ([]*PlanInfo, error)
	DeletePlan(ctx context.Context, planID string) error

	// Database operations
	Close() error
}

// PlanRecord is a persisted shard plan together with the options that
// produced it
type PlanRecord struct {
	ID        string // UUID assigned at save time if empty
	Name      string // Caller-supplied label, not unique
	Options   types.ShardOptions
	Plan      *types.ShardPlan
	CreatedAt time.Time
}

// PlanInfo is the listing view of a stored plan
type PlanInfo struct {
	ID          string
	Name        string
	Strategy    types.Strategy
	ShardCount  int
	TotalTokens int
	CreatedAt   time.Time
}
