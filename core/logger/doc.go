// Package logger provides a structured logging facility based on Zap.
//
// Both halves of the system share it: the generator tags batch-stage events
// with the catalog platform being processed (WithPlatform), while the lookup
// service correlates request logs through RayIDs (WithRayID).
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
package logger
