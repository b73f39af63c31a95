// Package storage provides the object storage client and the artifact
// publisher used to push generated datasets to an S3-compatible bucket.
//
// The Client interface is intentionally narrow: the generator only ever
// uploads finished artifacts and the tooling occasionally reads one back.
package storage
