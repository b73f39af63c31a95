package generator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"animeapi/feature/generator/export"
	"animeapi/feature/generator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func exportFixture(t *testing.T) (string, string) {
	t.Helper()
	dataDir := t.TempDir()
	apiDir := t.TempDir()

	anchors := []*models.Anime{
		{
			Title:       "Akira",
			MyAnimeList: models.Int(47),
			Shikimori:   models.Int(47),
			TheMovieDB:  models.Int(149),
			Trakt:       models.Int(126),
			TraktType:   models.Str("movies"),
		},
		{
			Title:       "Mushishi",
			AniDB:       models.Int(3395),
			MyAnimeList: models.Int(457),
			Shikimori:   models.Int(457),
			Trakt:       models.Int(1072),
			TraktType:   models.Str("shows"),
			TraktSeason: models.Int(1),
		},
	}

	e := export.New(dataDir, apiDir, "", zap.NewNop())
	_, err := e.Export(context.Background(), anchors)
	require.NoError(t, err)
	return dataDir, apiDir
}

// TestValidate_CleanExport tests that a fresh export passes every check.
func TestValidate_CleanExport(t *testing.T) {
	dataDir, apiDir := exportFixture(t)

	violations, err := NewValidator(dataDir, apiDir, zap.NewNop()).Validate()
	require.NoError(t, err)
	assert.Empty(t, violations)
}

// TestValidate_BrokenMirror tests that a shikimori drift is reported.
func TestValidate_BrokenMirror(t *testing.T) {
	dataDir, apiDir := exportFixture(t)

	path := filepath.Join(dataDir, "animeapi.json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []*models.Anime
	require.NoError(t, json.Unmarshal(raw, &records))
	records[0].Shikimori = models.Int(1)
	raw, err = json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	violations, err := NewValidator(dataDir, apiDir, zap.NewNop()).Validate()
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0], "shikimori")
}

// TestValidate_CountDrift tests that a count mismatch is reported.
func TestValidate_CountDrift(t *testing.T) {
	dataDir, apiDir := exportFixture(t)

	path := filepath.Join(apiDir, "status.json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var status models.Status
	require.NoError(t, json.Unmarshal(raw, &status))
	status.Counts["total"] = 99
	raw, err = json.Marshal(status)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	violations, err := NewValidator(dataDir, apiDir, zap.NewNop()).Validate()
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0], "total")
}
