package linker

import (
	"runtime"
	"sync"

	"animeapi/feature/generator/models"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"
)

// DefaultThreshold is the minimum Levenshtein ratio (0-100 scale) the fuzzy
// stage accepts as a match.
const DefaultThreshold = 85

// Options tunes a linking run.
type Options struct {
	// Threshold overrides DefaultThreshold when positive.
	Threshold int
	// Workers bounds the fuzzy-stage goroutines. Defaults to GOMAXPROCS.
	Workers int
}

// Result is the outcome of reconciling one secondary source.
type Result struct {
	// Linked counts records absorbed into the anchor set.
	Linked int
	// Fixed carries enriched copies of the linked records (source fields
	// plus the anchor IDs they joined to) for diagnostics.
	Fixed []map[string]any
	// Unlinked is the residue: records no stage could place. It feeds
	// the manual-override curation loop.
	Unlinked []map[string]any
}

// Link reconciles a secondary source against the anchor set with a four
// stage cascade: exact key join, slug-equivalence join, fuzzy title match,
// manual overrides. Later stages only see records the earlier stages left
// unresolved, and anchors are mutated in place.
func Link(src Adapter, anchors []*models.Anime, opts Options, log *zap.Logger) Result {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	n := src.Len()
	matched := make([]bool, n)
	res := Result{}

	// Stage 1: exact key join. First anchor wins a contested key so the
	// index is deterministic.
	exact := make(map[string]*models.Anime, len(anchors))
	for _, a := range anchors {
		if key, ok := src.AnchorKey(a); ok {
			if _, taken := exact[key]; !taken {
				exact[key] = a
			}
		}
	}
	for i := 0; i < n; i++ {
		key, ok := src.RecordKey(i)
		if !ok {
			continue
		}
		if a, hit := exact[key]; hit {
			res.Fixed = append(res.Fixed, src.Link(i, a))
			matched[i] = true
		}
	}

	// Stage 2: slug equivalence, for slug-native sources only.
	if sa, ok := src.(SlugAdapter); ok {
		slugged := make(map[string]*models.Anime, len(anchors))
		for _, a := range anchors {
			if key := sa.AnchorSlug(a); key != "" {
				if _, taken := slugged[key]; !taken {
					slugged[key] = a
				}
			}
		}
		for i := 0; i < n; i++ {
			if matched[i] {
				continue
			}
			key := sa.RecordSlug(i)
			if key == "" {
				continue
			}
			if a, hit := slugged[key]; hit {
				res.Fixed = append(res.Fixed, src.Link(i, a))
				matched[i] = true
			}
		}
	}

	// Stage 3: fuzzy title match over the remaining residue. Best score
	// wins; equal scores resolve to the lowest anchor index. The scan is
	// read-only over the anchor list, so it fans out across workers, and
	// all mutation happens afterwards on one goroutine.
	unresolved := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !matched[i] {
			unresolved = append(unresolved, i)
		}
	}
	candidates := make([]int, 0, len(anchors))
	for j, a := range anchors {
		// Anchors that already carry this source's ID are off the table.
		if _, ok := src.AnchorKey(a); ok {
			candidates = append(candidates, j)
		}
	}
	for _, hit := range fuzzyScan(src, anchors, candidates, unresolved, threshold, opts.Workers) {
		res.Fixed = append(res.Fixed, src.Link(hit.record, anchors[hit.anchor]))
		matched[hit.record] = true
	}

	// Stage 4: manual overrides, exact title against the anchor list.
	byTitle := make(map[string]*models.Anime, len(anchors))
	for _, a := range anchors {
		if _, taken := byTitle[a.Title]; !taken {
			byTitle[a.Title] = a
		}
	}
	for _, ov := range src.Overrides() {
		target, ok := byTitle[ov.Title]
		if !ok {
			log.Warn("Manual override targets unknown title",
				zap.String("source", src.Name()),
				zap.String("title", ov.Title),
			)
			continue
		}
		// The override carries its own identifiers, so it applies even
		// when the record never appeared in this scrape. When it did,
		// retire it from the residue.
		for i := 0; i < n; i++ {
			if !matched[i] && ov.Matches(i) {
				matched[i] = true
				res.Fixed = append(res.Fixed, src.Link(i, target))
				break
			}
		}
		ov.Apply(target)
	}

	// Residue by set difference, computed after every stage has finished.
	for i := 0; i < n; i++ {
		if matched[i] {
			res.Linked++
		} else {
			res.Unlinked = append(res.Unlinked, src.Residue(i))
		}
	}

	log.Info("Source linked",
		zap.String("source", src.Name()),
		zap.Int("records", n),
		zap.Int("linked", res.Linked),
		zap.Int("unlinked", len(res.Unlinked)),
	)
	return res
}

type fuzzyHit struct {
	record int
	anchor int
}

// fuzzyScan finds, for each unresolved record, the best-scoring candidate
// anchor at or above the threshold. Ties resolve to the lowest anchor index.
// Each record's search is independent, so the records are chunked across
// workers; hits come back in record order.
func fuzzyScan(src Adapter, anchors []*models.Anime, candidates, unresolved []int, threshold, workers int) []fuzzyHit {
	if len(unresolved) == 0 || len(candidates) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(unresolved) {
		workers = len(unresolved)
	}

	hits := make([]*fuzzyHit, len(unresolved))
	var wg sync.WaitGroup
	chunk := (len(unresolved) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(unresolved) {
			hi = len(unresolved)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for u := lo; u < hi; u++ {
				title := src.Title(unresolved[u])
				best, bestScore := -1, threshold-1
				for _, j := range candidates {
					if score := fuzzy.Ratio(title, anchors[j].Title); score > bestScore {
						best, bestScore = j, score
					}
				}
				if best >= 0 {
					hits[u] = &fuzzyHit{record: unresolved[u], anchor: best}
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	out := make([]fuzzyHit, 0, len(unresolved))
	for _, h := range hits {
		if h != nil {
			out = append(out, *h)
		}
	}
	return out
}
