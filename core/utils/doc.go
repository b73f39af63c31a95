// Package utils provides loose-typed scalar coercion helpers for the
// inconsistently typed JSON the upstream catalogs emit.
package utils
