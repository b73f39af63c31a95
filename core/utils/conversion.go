package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// Upstream catalogs are loosely typed JSON: numeric IDs arrive as numbers,
// quoted numbers, or occasionally null.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(string(v))
		return i
	default:
		s := fmt.Sprintf("%v", v)
		i, _ := strconv.Atoi(s)
		return i
	}
}

// ToIntPtr converts a loose JSON value to *int, returning nil for null,
// zero, or anything that fails integer coercion. This is the per-field
// failure policy: a malformed value nulls the field, never the record.
func ToIntPtr(val any) *int {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case float64:
		i := int(v)
		if i == 0 {
			return nil
		}
		return &i
	case int:
		if v == 0 {
			return nil
		}
		return &v
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || i == 0 {
			return nil
		}
		return &i
	default:
		return nil
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToStringPtr converts a loose JSON value to *string, nil for null or empty.
func ToStringPtr(val any) *string {
	if val == nil {
		return nil
	}
	s := ToString(val)
	if s == "" {
		return nil
	}
	return &s
}
