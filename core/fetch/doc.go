// Package fetch downloads upstream JSON datasets with a local cache
// fallback, so a temporarily unreachable source degrades to stale data
// instead of failing the pipeline.
package fetch
