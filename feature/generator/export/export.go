package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"animeapi/feature/generator/models"

	"go.uber.org/zap"
)

// Exporter writes the generated artifacts. Data files land in DataDir, the
// API surface (status.json) in APIDir. Every write goes through a temp file
// and rename, so a crash mid-export never leaves a truncated artifact.
type Exporter struct {
	DataDir         string
	APIDir          string
	ContributorsURL string

	log     *zap.Logger
	written []string
}

func New(dataDir, apiDir, contributorsURL string, log *zap.Logger) *Exporter {
	return &Exporter{
		DataDir:         dataDir,
		APIDir:          apiDir,
		ContributorsURL: contributorsURL,
		log:             log,
	}
}

// Export sorts the anchor set by title and writes every artifact: the full
// JSON and TSV dumps, the per-platform array and object projections, and
// status.json. It returns the finished status document.
func (e *Exporter) Export(ctx context.Context, anchors []*models.Anime) (*models.Status, error) {
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Title < anchors[j].Title
	})

	if err := os.MkdirAll(e.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(e.APIDir, 0o755); err != nil {
		return nil, fmt.Errorf("create api dir: %w", err)
	}

	if err := e.writeJSON(filepath.Join(e.DataDir, "animeapi.json"), anchors); err != nil {
		return nil, err
	}
	if err := e.writeTSV(filepath.Join(e.DataDir, "animeapi.tsv"), anchors); err != nil {
		return nil, err
	}

	status := models.DefaultStatus()
	now := time.Now().UTC()
	status.Updated = models.Updated{
		Timestamp: now.Unix(),
		ISO:       now.Format(time.RFC3339Nano),
	}

	for i := range models.Platforms {
		p := &models.Platforms[i]
		if err := e.exportPlatform(p, anchors, status); err != nil {
			return nil, err
		}
	}
	status.Counts["total"] = len(anchors)

	if e.ContributorsURL != "" {
		if logins, err := fetchContributors(ctx, e.ContributorsURL); err != nil {
			e.log.Warn("Contributors fetch failed, keeping configured list", zap.Error(err))
		} else if len(logins) > 0 {
			status.Contributors = logins
		}
	}

	if err := e.writeJSON(filepath.Join(e.APIDir, "status.json"), status); err != nil {
		return nil, err
	}

	e.log.Info("Export finished",
		zap.Int("total", len(anchors)),
		zap.Int("artifacts", len(e.written)),
	)
	return status, nil
}

// exportPlatform writes the {p}.json array and {p}_object.json map for one
// platform, and records the platform's count.
func (e *Exporter) exportPlatform(p *models.Platform, anchors []*models.Anime, status *models.Status) error {
	items := make([]*models.Anime, 0, len(anchors))
	for _, a := range anchors {
		if _, ok := p.ID(a); ok {
			items = append(items, a)
		}
	}

	object := make(map[string]*models.Anime, len(items))
	for _, a := range items {
		for _, key := range p.ObjectKeys(a) {
			if prev, dup := object[key]; dup {
				e.log.Warn("Duplicate platform key, keeping latest",
					zap.String("platform", p.Name),
					zap.String("key", key),
					zap.String("dropped", prev.Title),
					zap.String("kept", a.Title),
				)
			}
			object[key] = a
		}
	}

	if err := e.writeJSON(filepath.Join(e.DataDir, p.Name+".json"), items); err != nil {
		return err
	}
	if err := e.writeJSON(filepath.Join(e.DataDir, p.Name+"_object.json"), object); err != nil {
		return err
	}
	status.Counts[p.Name] = len(items)
	return nil
}

// Written lists every artifact path produced by this export, for the
// publisher.
func (e *Exporter) Written() []string {
	return e.written
}

func (e *Exporter) writeJSON(path string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return e.commit(path, raw)
}

// tsvHeader is the column order of animeapi.tsv. It mirrors the Anime
// struct's field order.
var tsvHeader = []string{
	"title", "anidb", "anilist", "animeplanet", "anisearch", "annict",
	"imdb", "kaize", "kaize_id", "kitsu", "livechart", "myanimelist",
	"nautiljon", "nautiljon_id", "notify", "otakotaku", "shikimori",
	"shoboi", "silveryasha", "themoviedb", "trakt", "trakt_type",
	"trakt_season",
}

func (e *Exporter) writeTSV(path string, anchors []*models.Anime) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	w.Comma = '\t'
	if err := w.Write(tsvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write tsv header: %w", err)
	}
	for _, a := range anchors {
		if err := w.Write(tsvRow(a)); err != nil {
			tmp.Close()
			return fmt.Errorf("write tsv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush tsv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	e.written = append(e.written, path)
	return nil
}

// tsvRow projects a record to TSV cells. Null identifiers become empty
// cells.
func tsvRow(a *models.Anime) []string {
	return []string{
		a.Title,
		cellInt(a.AniDB),
		cellInt(a.AniList),
		cellStr(a.AnimePlanet),
		cellInt(a.AniSearch),
		cellInt(a.Annict),
		cellStr(a.IMDB),
		cellStr(a.Kaize),
		cellInt(a.KaizeID),
		cellInt(a.Kitsu),
		cellInt(a.LiveChart),
		cellInt(a.MyAnimeList),
		cellStr(a.Nautiljon),
		cellInt(a.NautiljonID),
		cellStr(a.Notify),
		cellInt(a.OtakOtaku),
		cellInt(a.Shikimori),
		cellInt(a.Shoboi),
		cellInt(a.SilverYasha),
		cellInt(a.TheMovieDB),
		cellInt(a.Trakt),
		cellStr(a.TraktType),
		cellInt(a.TraktSeason),
	}
}

func cellInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func cellStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// commit writes raw bytes through a temp file and rename.
func (e *Exporter) commit(path string, raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	e.written = append(e.written, path)
	return nil
}
