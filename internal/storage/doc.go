// Package storage persists shard plans in SQLite.
//
// The sharding engine itself performs no I/O; this package is the
// persistence collaborator used by the MCP layer so plans can be
// merged or exported in later sessions.
//
// # Drivers
//
// Two SQLite drivers are supported via build tags:
//
//   - default / purego: modernc.org/sqlite, no C compiler needed
//   - sqlite_cgo: github.com/mattn/go-sqlite3, faster for large plans
//
// # Schema
//
// Plans, their shards, and their cross-references live in three tables
// keyed by a UUID plan id, with schema evolution handled by versioned
// migrations (see migrations.go):
//
//	store, err := storage.NewSQLiteStorage(dbFile)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.SavePlan(ctx, &storage.PlanRecord{Name: "spec", Plan: plan})
//
// Saves are transactional: a plan either lands fully or not at all.
package storage
