// Package render builds the human-facing views of a shard plan: the
// markdown plan summary, per-shard export documents with optional
// metadata headers, and safe export filenames. Pure string assembly;
// file writing stays with the caller.
package render
