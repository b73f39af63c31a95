// Package sources contains one adapter per upstream catalog. Each adapter
// normalizes its service's payload to a flat record list and caches the raw
// payload so a later run can survive the upstream being down.
//
// The HTML scrapers (Kaize, Nautiljon) and the Otak Otaku view API walker
// are rate-limited and always prefer a stale cached index over failing the
// batch.
package sources
