// Package export writes the generated cross-reference artifacts: the full
// JSON and TSV dumps, per-platform array and object-map projections, and
// the status.json attribution document.
package export
