// Package lookup serves the generated cross-reference dataset over HTTP:
// per-platform record lookups, the composite trakt and TMDB routes, the
// status and schema documents, and redirects to the external services.
package lookup
