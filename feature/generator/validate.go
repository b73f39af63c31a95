package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"animeapi/feature/generator/models"

	"go.uber.org/zap"
)

// Validator checks emitted artifacts against the dataset's structural
// guarantees: complete schema, the Shikimori mirror, consistent trakt
// triples, season-one aliasing and counts that match the array files.
type Validator struct {
	DataDir string
	APIDir  string

	log *zap.Logger
}

func NewValidator(dataDir, apiDir string, log *zap.Logger) *Validator {
	return &Validator{DataDir: dataDir, APIDir: apiDir, log: log}
}

// Validate runs every check and returns the violations found. An empty
// slice means the artifacts are consistent.
func (v *Validator) Validate() ([]string, error) {
	var violations []string

	records, err := v.loadArray("animeapi.json")
	if err != nil {
		return nil, err
	}

	violations = append(violations, checkRecords(records)...)
	violations = append(violations, checkSorted(records)...)

	status, err := v.loadStatus()
	if err != nil {
		return nil, err
	}
	if got := status.Counts["total"]; got != len(records) {
		violations = append(violations, fmt.Sprintf("counts: total is %d, animeapi.json has %d records", got, len(records)))
	}

	for i := range models.Platforms {
		p := &models.Platforms[i]
		pv, err := v.checkPlatform(p, status)
		if err != nil {
			return nil, err
		}
		violations = append(violations, pv...)
	}

	for _, violation := range violations {
		v.log.Error("Artifact violation", zap.String("violation", violation))
	}
	return violations, nil
}

func (v *Validator) loadArray(name string) ([]*models.Anime, error) {
	raw, err := os.ReadFile(filepath.Join(v.DataDir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var records []*models.Anime
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return records, nil
}

func (v *Validator) loadStatus() (*models.Status, error) {
	raw, err := os.ReadFile(filepath.Join(v.APIDir, "status.json"))
	if err != nil {
		return nil, fmt.Errorf("read status.json: %w", err)
	}
	var status models.Status
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("decode status.json: %w", err)
	}
	return &status, nil
}

// checkRecords validates per-record structure.
func checkRecords(records []*models.Anime) []string {
	var violations []string
	for i, a := range records {
		ref := fmt.Sprintf("record %d (%q)", i, a.Title)
		if a.Title == "" {
			violations = append(violations, fmt.Sprintf("record %d: empty title", i))
		}
		if !intPtrEqual(a.Shikimori, a.MyAnimeList) {
			violations = append(violations, ref+": shikimori does not mirror myanimelist")
		}
		if (a.Trakt == nil) != (a.TraktType == nil) {
			violations = append(violations, ref+": trakt and trakt_type must be set together")
		}
		if a.TraktSeason != nil && a.Trakt == nil {
			violations = append(violations, ref+": trakt_season set without trakt")
		}
		if a.TraktType != nil && strings.HasPrefix(*a.TraktType, "show") && a.TraktSeason == nil {
			violations = append(violations, ref+": show entry without trakt_season")
		}
	}
	return violations
}

func checkSorted(records []*models.Anime) []string {
	sorted := sort.SliceIsSorted(records, func(i, j int) bool {
		return records[i].Title < records[j].Title
	})
	if !sorted {
		return []string{"animeapi.json is not sorted by title"}
	}
	return nil
}

// checkPlatform validates one platform's array, object map and count.
func (v *Validator) checkPlatform(p *models.Platform, status *models.Status) ([]string, error) {
	var violations []string

	items, err := v.loadArray(p.Name + ".json")
	if err != nil {
		return nil, err
	}
	if got := status.Counts[p.Name]; got != len(items) {
		violations = append(violations, fmt.Sprintf("counts: %s is %d, %s.json has %d records", p.Name, got, p.Name, len(items)))
	}
	for _, a := range items {
		if _, ok := p.ID(a); !ok {
			violations = append(violations, fmt.Sprintf("%s.json: %q has no %s id", p.Name, a.Title, p.Name))
		}
	}

	raw, err := os.ReadFile(filepath.Join(v.DataDir, p.Name+"_object.json"))
	if err != nil {
		return nil, fmt.Errorf("read %s_object.json: %w", p.Name, err)
	}
	var object map[string]*models.Anime
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil, fmt.Errorf("decode %s_object.json: %w", p.Name, err)
	}

	for key, a := range object {
		keys := p.ObjectKeys(a)
		if !contains(keys, key) {
			violations = append(violations, fmt.Sprintf("%s_object.json: key %q does not match its record %q", p.Name, key, a.Title))
		}
	}
	if p.Name == "trakt" {
		for key, a := range object {
			if strings.HasSuffix(key, "/seasons/1") {
				alias := strings.TrimSuffix(key, "/seasons/1")
				if _, ok := object[alias]; !ok {
					violations = append(violations, fmt.Sprintf("trakt_object.json: season-1 entry %q missing bare alias %q (%s)", key, alias, a.Title))
				}
			}
		}
	}
	return violations, nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
