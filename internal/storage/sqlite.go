package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/docshard-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested plan doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SavePlan persists a plan record with its shards and cross-references
// in one transaction. An empty record ID gets a fresh UUID.
func (s *SQLiteStorage) SavePlan(ctx context.Context, record *PlanRecord) error {
	if record.Plan == nil {
		return errors.New("plan record has no plan")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	orderJSON, err := json.Marshal(record.Plan.RecommendedOrder)
	if err != nil {
		return fmt.Errorf("failed to encode recommended order: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	a := record.Plan.Analysis
	_, err = tx.ExecContext(ctx, `
		INSERT INTO plans (
			id, name, strategy, max_tokens_per_shard, preserve_context, include_metadata,
			total_tokens, recommended_order,
			section_count, requirement_count, scenario_count, total_lines,
			estimated_tokens, complexity_score, recommended_strategy, reasoning,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Name,
		string(record.Options.Strategy), record.Options.MaxTokensPerShard,
		record.Options.PreserveContext, record.Options.IncludeMetadata,
		record.Plan.TotalTokens, string(orderJSON),
		a.SectionCount, a.RequirementCount, a.ScenarioCount, a.TotalLines,
		a.EstimatedTokens, a.ComplexityScore, string(a.RecommendedStrategy), a.Reasoning,
		record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	for i := range record.Plan.Shards {
		sh := &record.Plan.Shards[i]
		depsJSON, err := json.Marshal(sh.Dependencies)
		if err != nil {
			return fmt.Errorf("failed to encode dependencies for %s: %w", sh.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO shards (
				plan_id, position, shard_id, shard_type, content,
				token_count, priority, section_name, parent_id, dependencies
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, i, sh.ID, string(sh.Type), sh.Content,
			sh.TokenCount, sh.Priority, sh.SectionName, sh.ParentID, string(depsJSON))
		if err != nil {
			return fmt.Errorf("failed to insert shard %s: %w", sh.ID, err)
		}
	}

	for i, ref := range record.Plan.CrossReferences {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cross_references (plan_id, position, from_id, to_id, ref_type, description)
			VALUES (?, ?, ?, ?, ?, ?)`,
			record.ID, i, ref.From, ref.To, string(ref.Type), ref.Description)
		if err != nil {
			return fmt.Errorf("failed to insert cross-reference %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetPlan loads a full plan record by id
func (s *SQLiteStorage) GetPlan(ctx context.Context, planID string) (*PlanRecord, error) {
	record := &PlanRecord{ID: planID, Plan: &types.ShardPlan{}}

	var orderJSON, strategy, recommended string
	a := &record.Plan.Analysis
	err := s.db.QueryRowContext(ctx, `
		SELECT name, strategy, max_tokens_per_shard, preserve_context, include_metadata,
		       total_tokens, recommended_order,
		       section_count, requirement_count, scenario_count, total_lines,
		       estimated_tokens, complexity_score, recommended_strategy, reasoning,
		       created_at
		FROM plans WHERE id = ?`, planID).Scan(
		&record.Name, &strategy, &record.Options.MaxTokensPerShard,
		&record.Options.PreserveContext, &record.Options.IncludeMetadata,
		&record.Plan.TotalTokens, &orderJSON,
		&a.SectionCount, &a.RequirementCount, &a.ScenarioCount, &a.TotalLines,
		&a.EstimatedTokens, &a.ComplexityScore, &recommended, &a.Reasoning,
		&record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	record.Options.Strategy = types.Strategy(strategy)
	a.RecommendedStrategy = types.Strategy(recommended)

	if err := json.Unmarshal([]byte(orderJSON), &record.Plan.RecommendedOrder); err != nil {
		return nil, fmt.Errorf("failed to decode recommended order: %w", err)
	}

	if err := s.loadShards(ctx, record); err != nil {
		return nil, err
	}
	if err := s.loadCrossReferences(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SQLiteStorage) loadShards(ctx context.Context, record *PlanRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT shard_id, shard_type, content, token_count, priority,
		       section_name, parent_id, dependencies
		FROM shards WHERE plan_id = ? ORDER BY position`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to load shards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var sh types.Shard
		var shardType, depsJSON string
		if err := rows.Scan(&sh.ID, &shardType, &sh.Content, &sh.TokenCount,
			&sh.Priority, &sh.SectionName, &sh.ParentID, &depsJSON); err != nil {
			return fmt.Errorf("failed to scan shard: %w", err)
		}
		sh.Type = types.ShardType(shardType)
		if depsJSON != "" {
			if err := json.Unmarshal([]byte(depsJSON), &sh.Dependencies); err != nil {
				return fmt.Errorf("failed to decode dependencies for %s: %w", sh.ID, err)
			}
		}
		record.Plan.Shards = append(record.Plan.Shards, sh)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadCrossReferences(ctx context.Context, record *PlanRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT from_id, to_id, ref_type, description
		FROM cross_references WHERE plan_id = ? ORDER BY position`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to load cross-references: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ref types.CrossReference
		var refType string
		if err := rows.Scan(&ref.From, &ref.To, &refType, &ref.Description); err != nil {
			return fmt.Errorf("failed to scan cross-reference: %w", err)
		}
		ref.Type = types.CrossRefType(refType)
		record.Plan.CrossReferences = append(record.Plan.CrossReferences, ref)
	}
	return rows.Err()
}

// ListPlans returns stored plans, newest first
func (s *SQLiteStorage) ListPlans(ctx context.Context, limit int) ([]*PlanInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.strategy, p.total_tokens, p.created_at,
		       (SELECT COUNT(*) FROM shards s WHERE s.plan_id = p.id)
		FROM plans p ORDER BY p.created_at DESC, p.id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []*PlanInfo
	for rows.Next() {
		info := &PlanInfo{}
		var strategy string
		if err := rows.Scan(&info.ID, &info.Name, &strategy,
			&info.TotalTokens, &info.CreatedAt, &info.ShardCount); err != nil {
			return nil, fmt.Errorf("failed to scan plan info: %w", err)
		}
		info.Strategy = types.Strategy(strategy)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeletePlan removes a plan and, via cascade, its shards and references
func (s *SQLiteStorage) DeletePlan(ctx context.Context, planID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
