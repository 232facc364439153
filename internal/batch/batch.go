package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docshard-mcp/internal/planner"
	"github.com/dshills/docshard-mcp/internal/storage"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// Runner plans many documents concurrently: read -> plan -> store
type Runner struct {
	planner *planner.Planner
	storage storage.Storage

	// Worker pool configuration
	workers int
}

// Config contains configuration for a batch run
type Config struct {
	Workers   int  // Number of concurrent workers (default: runtime.NumCPU())
	SavePlans bool // Whether to persist each plan (requires storage)
}

// Document is a single input to a batch run
type Document struct {
	Name string // Display name, usually the file path
	Text string
}

// Item records the outcome for one document
type Item struct {
	Name   string
	PlanID string // Set when SavePlans is enabled and the plan was stored
	Result *planner.Result
}

// Statistics contains statistics about a batch run
type Statistics struct {
	DocumentsPlanned int
	DocumentsFailed  int
	TotalShards      int
	TotalTokens      int
	Duration         time.Duration
	Items            []Item
	ErrorMessages    []string
}

// New creates a new batch Runner. store may be nil when plans are not persisted.
func New(p *planner.Planner, store storage.Storage) *Runner {
	return &Runner{
		planner: p,
		storage: store,
		workers: runtime.NumCPU(),
	}
}

// Run plans each document concurrently and collects per-document results.
// Planning failures are recorded, not fatal; the error return covers
// infrastructure failures only (context cancellation, storage errors).
func (r *Runner) Run(ctx context.Context, docs []Document, opts types.ShardOptions, config *Config) (*Statistics, error) {
	if config == nil {
		config = &Config{Workers: runtime.NumCPU()}
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.SavePlans && r.storage == nil {
		return nil, fmt.Errorf("save requested but no storage configured")
	}

	startTime := time.Now()
	stats := &Statistics{
		Items:         make([]Item, len(docs)),
		ErrorMessages: make([]string, 0),
	}

	var (
		planned int32
		failed  int32
		// Token totals across a large batch can pass 2^31; keep the
		// aggregates 64-bit
		shards int64
		tokens int64
	)

	semaphore := make(chan struct{}, config.Workers)
	g, gctx := errgroup.WithContext(ctx)

	for i := range docs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			doc := docs[i]
			result := r.planner.Plan(doc.Text, opts)
			stats.Items[i] = Item{Name: doc.Name, Result: result}

			if !result.Success {
				atomic.AddInt32(&failed, 1)
				return nil
			}

			atomic.AddInt32(&planned, 1)
			atomic.AddInt64(&shards, int64(len(result.Plan.Shards)))
			atomic.AddInt64(&tokens, int64(result.Plan.TotalTokens))

			if config.SavePlans {
				record := &storage.PlanRecord{
					Name:    doc.Name,
					Options: opts,
					Plan:    result.Plan,
				}
				if err := r.storage.SavePlan(gctx, record); err != nil {
					return fmt.Errorf("failed to save plan for %s: %w", doc.Name, err)
				}
				stats.Items[i].PlanID = record.ID
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.DocumentsPlanned = int(planned)
	stats.DocumentsFailed = int(failed)
	stats.TotalShards = int(shards)
	stats.TotalTokens = int(tokens)
	for _, item := range stats.Items {
		if item.Result != nil && !item.Result.Success {
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %s", item.Name, item.Result.Err))
		}
	}
	stats.Duration = time.Since(startTime)

	return stats, nil
}

// RunFiles loads the given markdown files and plans them. Paths may be
// files or directories; directories are walked for markdown files.
func (r *Runner) RunFiles(ctx context.Context, paths []string, opts types.ShardOptions, config *Config) (*Statistics, error) {
	files, err := discoverFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no markdown files found")
	}

	docs := make([]Document, 0, len(files))
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, Document{Name: path, Text: string(content)})
	}

	return r.Run(ctx, docs, opts, config)
}

// discoverFiles expands the given paths into a list of markdown files
func discoverFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				// Skip hidden directories
				if strings.HasPrefix(fi.Name(), ".") && fi.Name() != "." {
					return filepath.SkipDir
				}
				return nil
			}
			if isMarkdown(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
