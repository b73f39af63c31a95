package linker

import (
	"strings"

	"animeapi/feature/generator/models"

	"github.com/gosimple/slug"
)

// Adapter provides the source-specific pieces of the match cascade. The
// engine never inspects source records directly; it addresses them by index
// through the adapter, which keeps per-source field handling in one place.
type Adapter interface {
	// Name identifies the source in logs and artifact names.
	Name() string

	// Len is the number of source records.
	Len() int

	// Title returns the source record's display title, the fuzzy-stage
	// match key.
	Title(i int) string

	// AnchorKey derives the exact-stage join key from an anchor record.
	// ok is false when the anchor carries none of the fields this source
	// joins on.
	AnchorKey(a *models.Anime) (key string, ok bool)

	// RecordKey derives the exact-stage join key from source record i.
	RecordKey(i int) (key string, ok bool)

	// Link writes record i's identifiers onto the anchor, and returns an
	// enriched copy of the record carrying the anchor's already-known IDs
	// for the diagnostics artifact.
	Link(i int, a *models.Anime) map[string]any

	// Residue serializes record i for the unlinked artifact.
	Residue(i int) map[string]any

	// Overrides returns the source's manual-override entries.
	Overrides() []Override
}

// SlugAdapter is implemented by sources whose native identifier is a slug.
// It enables the slug-equivalence stage, which joins on a normalized slug
// tolerant of punctuation and case drift.
type SlugAdapter interface {
	// AnchorSlug derives the normalized slug key from an anchor record.
	AnchorSlug(a *models.Anime) string
	// RecordSlug derives the normalized slug key from source record i.
	RecordSlug(i int) string
}

// Override is one manual-override entry: a curated link between an exact
// anchor title and a set of source identifiers.
type Override struct {
	// Title is the anchor title the override targets, compared exactly.
	Title string
	// Matches reports whether unresolved record i is the one this
	// override resolves. Overrides for records that were already linked
	// (or never scraped) are skipped.
	Matches func(i int) bool
	// Apply writes the override's identifiers onto the anchor.
	Apply func(a *models.Anime)
}

// NormalizeSlug lowercases, slugifies and strips hyphens, so that
// "Dr. STONE" and the slug "dr-stone" collapse to the same key.
func NormalizeSlug(s string) string {
	return strings.ReplaceAll(slug.Make(s), "-", "")
}
