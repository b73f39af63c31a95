// Package models defines the unified anime cross-reference record and the
// static platform registry shared by the generator pipeline and the lookup
// service.
package models
