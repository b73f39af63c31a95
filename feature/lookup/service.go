package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"animeapi/feature/generator/models"

	"go.uber.org/zap"
)

// Service answers lookups against the exported object maps. Every
// {platform}_object.json is loaded into memory once at startup; the maps
// are read-only afterwards, so handlers share them without locking.
type Service struct {
	dataDir string
	apiDir  string
	logger  *zap.Logger
	objects map[string]map[string]*models.Anime
}

// NewService loads the object maps from dataDir. Platforms whose artifact
// is missing are served as empty, so a partially generated dataset still
// boots.
func NewService(dataDir, apiDir string, logger *zap.Logger) (*Service, error) {
	s := &Service{
		dataDir: dataDir,
		apiDir:  apiDir,
		logger:  logger,
		objects: make(map[string]map[string]*models.Anime, len(models.Platforms)),
	}
	for i := range models.Platforms {
		p := &models.Platforms[i]
		m, err := loadObject(filepath.Join(dataDir, p.Name+"_object.json"))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p.Name, err)
		}
		s.objects[p.Name] = m
	}
	s.logger.Info("Object maps loaded", zap.Int("platforms", len(s.objects)))
	return s, nil
}

func loadObject(path string) (map[string]*models.Anime, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*models.Anime{}, nil
		}
		return nil, err
	}
	var m map[string]*models.Anime
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Record resolves one identifier on a platform. The platform name accepts
// synonyms; ok is false when either the platform or the ID is unknown.
func (s *Service) Record(platform, id string) (*models.Anime, bool) {
	p, ok := models.ByName(strings.ToLower(platform))
	if !ok {
		return nil, false
	}
	a, ok := s.objects[p.Name][id]
	return a, ok
}

// KnownPlatform reports whether the name resolves to a served platform and
// returns its canonical form.
func (s *Service) KnownPlatform(name string) (string, bool) {
	p, ok := models.ByName(strings.ToLower(name))
	if !ok {
		return "", false
	}
	return p.Name, true
}

// Status returns the raw status.json document.
func (s *Service) Status() ([]byte, error) {
	return os.ReadFile(filepath.Join(s.apiDir, "status.json"))
}

// UpdatedAt returns the last export's Unix timestamp from status.json.
func (s *Service) UpdatedAt() (int64, error) {
	raw, err := s.Status()
	if err != nil {
		return 0, err
	}
	var doc models.Status
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, err
	}
	return doc.Updated.Timestamp, nil
}

// Schema returns the raw schema.json document.
func (s *Service) Schema() ([]byte, error) {
	return os.ReadFile(filepath.Join(s.apiDir, "schema.json"))
}

// Robots returns the robots.txt payload.
func (s *Service) Robots() ([]byte, error) {
	return os.ReadFile(filepath.Join(s.apiDir, "robots.txt"))
}

// ArrayPath returns the on-disk path of a platform's array artifact.
// object selects the {p}_object.json projection instead.
func (s *Service) ArrayPath(platform string, object bool) (string, bool) {
	if platform == "animeapi" {
		return filepath.Join(s.dataDir, "animeapi.json"), true
	}
	p, ok := models.ByName(strings.ToLower(platform))
	if !ok {
		return "", false
	}
	name := p.Name + ".json"
	if object {
		name = p.Name + "_object.json"
	}
	return filepath.Join(s.dataDir, name), true
}

// TSVPath returns the on-disk path of the TSV dump.
func (s *Service) TSVPath() string {
	return filepath.Join(s.dataDir, "animeapi.tsv")
}

// Heartbeat checks that the dataset is sane by looking up MyAnimeList ID 1
// and verifying the record points back at itself.
func (s *Service) Heartbeat() error {
	a, ok := s.Record("myanimelist", "1")
	if !ok {
		return fmt.Errorf("myanimelist id 1 missing from dataset")
	}
	if a.MyAnimeList == nil || *a.MyAnimeList != 1 {
		return fmt.Errorf("myanimelist id 1 record is corrupted")
	}
	return nil
}
