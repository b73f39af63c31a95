// Package linker reconciles secondary ID sources against the anchor set.
//
// Each source implements Adapter; the engine runs a four stage cascade
// (exact key, slug equivalence, fuzzy title, manual overrides) and reports
// what it linked and what remains for curation.
package linker
