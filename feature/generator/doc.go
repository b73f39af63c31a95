// Package generator implements the batch pipeline that builds the anime
// cross-reference dataset: fetch the upstream sources, simplify the
// aggregated database into the anchor set, link the scraped catalogs onto
// it, fold in the direct-keyed relation tables, and export the artifacts.
package generator
