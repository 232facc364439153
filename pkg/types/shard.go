package types

import (
	"fmt"
	"regexp"
)

// ShardType classifies what a shard was cut from
type ShardType string

const (
	ShardMetadata    ShardType = "metadata"
	ShardSection     ShardType = "section"
	ShardRequirement ShardType = "requirement"
	ShardScenario    ShardType = "scenario"
	ShardChunk       ShardType = "chunk"
)

// MaxShardIDLength bounds shard identifiers so they stay safe to embed
// in generated filenames and in content scans
const MaxShardIDLength = 64

// shardIDPattern matches identifiers that are safe for filenames and
// for literal content scanning
var shardIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Shard represents one self-contained fragment of a decomposed document
type Shard struct {
	// Identification
	ID   string
	Type ShardType

	// Content
	Content    string
	TokenCount int // Assigned by the estimator after decomposition

	// Ordering
	Priority int // Lower values are processed earlier

	// Structure
	SectionName  string   // Optional label for section-derived shards
	ParentID     string   // Owning shard; parent always precedes child
	Dependencies []string // Shard IDs this shard requires
}

// ValidateShardID checks that an identifier is usable as a shard ID.
// IDs are plan-local; uniqueness is the planner's responsibility.
func ValidateShardID(id string) error {
	if id == "" {
		return ErrEmptyShardID
	}
	if len(id) > MaxShardIDLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrShardIDTooLong, len(id), MaxShardIDLength)
	}
	if !shardIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidShardID, id)
	}
	return nil
}

// ValidateType checks if the shard type is one of the known types
func (s *Shard) ValidateType() error {
	switch s.Type {
	case ShardMetadata, ShardSection, ShardRequirement, ShardScenario, ShardChunk:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidShardType, s.Type)
	}
}

// Validate performs comprehensive validation of the shard
func (s *Shard) Validate() error {
	if err := ValidateShardID(s.ID); err != nil {
		return err
	}
	if s.Content == "" {
		return ErrEmptyContent
	}
	if err := s.ValidateType(); err != nil {
		return err
	}
	if s.TokenCount < 0 {
		return ErrNegativeTokenCount
	}
	for _, dep := range s.Dependencies {
		if err := ValidateShardID(dep); err != nil {
			return fmt.Errorf("dependency of %s: %w", s.ID, err)
		}
	}
	return nil
}

// DependsOn reports whether the shard lists id as an explicit dependency
func (s *Shard) DependsOn(id string) bool {
	for _, dep := range s.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}
