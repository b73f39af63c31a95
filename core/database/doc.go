// Package database provides the sqlite-backed run-history store.
//
// Each generator invocation is recorded with its timestamps and the
// per-platform record counts, which makes count regressions between runs
// visible without diffing artifacts.
package database
