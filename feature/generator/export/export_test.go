package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"animeapi/feature/generator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAnchors() []*models.Anime {
	return []*models.Anime{
		{
			Title:       "Zoku Owarimonogatari",
			MyAnimeList: models.Int(36999),
			Shikimori:   models.Int(36999),
			Trakt:       models.Int(101337),
			TraktType:   models.Str("shows"),
			TraktSeason: models.Int(3),
		},
		{
			Title:       "Akira",
			MyAnimeList: models.Int(47),
			Shikimori:   models.Int(47),
			IMDB:        models.Str("tt0094625"),
			TheMovieDB:  models.Int(149),
			Trakt:       models.Int(126),
			TraktType:   models.Str("movies"),
		},
		{
			Title:       "Mushishi",
			MyAnimeList: models.Int(457),
			Shikimori:   models.Int(457),
			Trakt:       models.Int(1072),
			TraktType:   models.Str("shows"),
			TraktSeason: models.Int(1),
		},
	}
}

func runExport(t *testing.T) (dataDir, apiDir string, status *models.Status) {
	t.Helper()
	dataDir = t.TempDir()
	apiDir = t.TempDir()

	e := New(dataDir, apiDir, "", zap.NewNop())
	status, err := e.Export(context.Background(), testAnchors())
	require.NoError(t, err)
	return dataDir, apiDir, status
}

// TestExport_SortedByTitle tests that animeapi.json comes out title-sorted.
func TestExport_SortedByTitle(t *testing.T) {
	dataDir, _, _ := runExport(t)

	raw, err := os.ReadFile(filepath.Join(dataDir, "animeapi.json"))
	require.NoError(t, err)

	var out []models.Anime
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 3)
	assert.Equal(t, "Akira", out[0].Title)
	assert.Equal(t, "Mushishi", out[1].Title)
	assert.Equal(t, "Zoku Owarimonogatari", out[2].Title)
}

// TestExport_PlatformArrayFilters tests that {p}.json only carries records
// known to the platform.
func TestExport_PlatformArrayFilters(t *testing.T) {
	dataDir, _, _ := runExport(t)

	raw, err := os.ReadFile(filepath.Join(dataDir, "imdb.json"))
	require.NoError(t, err)

	var out []models.Anime
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Akira", out[0].Title)
}

// TestExport_TraktObjectKeys tests the composite trakt map: movies under
// their base key, shows under the seasoned key, with a bare alias only for
// season one.
func TestExport_TraktObjectKeys(t *testing.T) {
	dataDir, _, _ := runExport(t)

	raw, err := os.ReadFile(filepath.Join(dataDir, "trakt_object.json"))
	require.NoError(t, err)

	var out map[string]models.Anime
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Contains(t, out, "movies/126")
	assert.Contains(t, out, "shows/101337/seasons/3")
	assert.NotContains(t, out, "shows/101337")
	assert.Contains(t, out, "shows/1072/seasons/1")
	assert.Contains(t, out, "shows/1072")
	assert.Equal(t, "Mushishi", out["shows/1072"].Title)
}

// TestExport_TmdbObjectKeys tests the movie/{id} key shape.
func TestExport_TmdbObjectKeys(t *testing.T) {
	dataDir, _, _ := runExport(t)

	raw, err := os.ReadFile(filepath.Join(dataDir, "themoviedb_object.json"))
	require.NoError(t, err)

	var out map[string]models.Anime
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Akira", out["movie/149"].Title)
}

// TestExport_StatusCounts tests the per-platform counts and the total.
func TestExport_StatusCounts(t *testing.T) {
	_, apiDir, status := runExport(t)

	assert.Equal(t, 3, status.Counts["total"])
	assert.Equal(t, 3, status.Counts["myanimelist"])
	assert.Equal(t, 3, status.Counts["shikimori"])
	assert.Equal(t, 1, status.Counts["imdb"])
	assert.Equal(t, 1, status.Counts["themoviedb"])
	assert.Zero(t, status.Counts["anidb"])
	assert.NotZero(t, status.Updated.Timestamp)
	assert.NotEmpty(t, status.Updated.ISO)

	raw, err := os.ReadFile(filepath.Join(apiDir, "status.json"))
	require.NoError(t, err)
	var onDisk models.Status
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, status.Counts, onDisk.Counts)
}

// TestExport_TSV tests the header row and empty cells for null IDs.
func TestExport_TSV(t *testing.T) {
	dataDir, _, _ := runExport(t)

	raw, err := os.ReadFile(filepath.Join(dataDir, "animeapi.tsv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(tsvHeader, "\t"), lines[0])

	akira := strings.Split(lines[1], "\t")
	require.Len(t, akira, len(tsvHeader))
	assert.Equal(t, "Akira", akira[0])
	// anidb unknown, imdb known
	assert.Empty(t, akira[1])
	assert.Equal(t, "tt0094625", akira[6])
}

// TestExport_Idempotent tests that re-exporting the same records produces
// identical data artifacts.
func TestExport_Idempotent(t *testing.T) {
	dataDir := t.TempDir()
	apiDir := t.TempDir()

	e := New(dataDir, apiDir, "", zap.NewNop())
	_, err := e.Export(context.Background(), testAnchors())
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dataDir, "trakt_object.json"))
	require.NoError(t, err)

	_, err = e.Export(context.Background(), testAnchors())
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dataDir, "trakt_object.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestExport_NoLeftoverTempFiles tests that commits clean up after
// themselves.
func TestExport_NoLeftoverTempFiles(t *testing.T) {
	dataDir, _, _ := runExport(t)

	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	for _, ent := range entries {
		assert.False(t, strings.HasPrefix(ent.Name(), ".tmp-"), ent.Name())
	}
}
