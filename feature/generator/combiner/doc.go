// Package combiner folds relation tables that already share an ID space
// with the anchor set (MAL, AniList, aniDB) into the anchor records. Unlike
// the linker cascade there is no matching heuristic here, only direct key
// joins.
package combiner
