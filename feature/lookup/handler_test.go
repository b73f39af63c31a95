package lookup

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"animeapi/feature/generator/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testRepoURL = "https://github.com/nattadasu/animeApi"

func writeArtifact(t *testing.T, dir, name string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
}

func bebop() *models.Anime {
	return &models.Anime{
		Title:       "Cowboy Bebop",
		AniDB:       models.Int(23),
		AniList:     models.Int(1),
		Kitsu:       models.Int(1),
		MyAnimeList: models.Int(1),
		Shikimori:   models.Int(1),
		Shoboi:      models.Int(538),
		Trakt:       models.Int(30857),
		TraktType:   models.Str("shows"),
		TraktSeason: models.Int(1),
	}
}

func akira() *models.Anime {
	return &models.Anime{
		Title:       "Akira",
		MyAnimeList: models.Int(47),
		Shikimori:   models.Int(47),
		TheMovieDB:  models.Int(149),
		Trakt:       models.Int(126),
		TraktType:   models.Str("movies"),
	}
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dataDir := t.TempDir()
	apiDir := t.TempDir()

	writeArtifact(t, dataDir, "myanimelist_object.json", map[string]*models.Anime{
		"1":  bebop(),
		"47": akira(),
	})
	writeArtifact(t, dataDir, "anidb_object.json", map[string]*models.Anime{
		"23": bebop(),
	})
	writeArtifact(t, dataDir, "shoboi_object.json", map[string]*models.Anime{
		"538": bebop(),
	})
	writeArtifact(t, dataDir, "trakt_object.json", map[string]*models.Anime{
		"shows/30857":           bebop(),
		"shows/30857/seasons/1": bebop(),
		"movies/126":            akira(),
	})
	writeArtifact(t, dataDir, "themoviedb_object.json", map[string]*models.Anime{
		"movie/149": akira(),
	})
	writeArtifact(t, dataDir, "animeapi.json", []*models.Anime{akira(), bebop()})
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "animeapi.tsv"),
		[]byte("title\tanidb\nCowboy Bebop\t23\n"), 0o644))

	status := models.DefaultStatus()
	status.Updated = models.Updated{Timestamp: 1700000000, ISO: "2023-11-14T22:13:20Z"}
	status.Counts["total"] = 2
	writeArtifact(t, apiDir, "status.json", status)

	service, err := NewService(dataDir, apiDir, zap.NewNop())
	require.NoError(t, err)

	app := fiber.New()
	NewHandler(service, testRepoURL, zap.NewNop()).RegisterRoutes(app)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHandleIndex(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, testRepoURL, resp.Header.Get("Location"))
}

func TestHandleStatus(t *testing.T) {
	app := setupTestApp(t)
	code, body := get(t, app, "/status")

	assert.Equal(t, 200, code)
	var doc models.Status
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, 2, doc.Counts["total"])
}

func TestHandleHeartbeat(t *testing.T) {
	app := setupTestApp(t)
	code, body := get(t, app, "/heartbeat")

	assert.Equal(t, 200, code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "OK", out["status"])

	code, _ = get(t, app, "/ping")
	assert.Equal(t, 200, code)
}

func TestHandleHeartbeat_CorruptedDataset(t *testing.T) {
	service, err := NewService(t.TempDir(), t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	app := fiber.New()
	NewHandler(service, testRepoURL, zap.NewNop()).RegisterRoutes(app)

	code, _ := get(t, app, "/heartbeat")
	assert.Equal(t, 500, code)
}

func TestHandleUpdated(t *testing.T) {
	app := setupTestApp(t)
	code, body := get(t, app, "/updated")

	assert.Equal(t, 200, code)
	assert.Equal(t, "Updated on 11/14/2023 22:13:20 UTC", string(body))
}

func TestPlatformLookup(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name  string
		path  string
		code  int
		title string
	}{
		{name: "canonical", path: "/myanimelist/1", code: 200, title: "Cowboy Bebop"},
		{name: "synonym", path: "/mal/1", code: 200, title: "Cowboy Bebop"},
		{name: "syobocal synonym", path: "/syobocal/538", code: 200, title: "Cowboy Bebop"},
		{name: "json suffix stripped", path: "/myanimelist/1.json", code: 200, title: "Cowboy Bebop"},
		{name: "html suffix stripped", path: "/myanimelist/47.html", code: 200, title: "Akira"},
		{name: "unknown id", path: "/myanimelist/999999", code: 404},
		{name: "unknown platform", path: "/letterboxd/1", code: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, app, tt.path)
			assert.Equal(t, tt.code, code)
			if tt.title != "" {
				var a models.Anime
				require.NoError(t, json.Unmarshal(body, &a))
				assert.Equal(t, tt.title, a.Title)
			}
		})
	}
}

func TestHandleTrakt(t *testing.T) {
	app := setupTestApp(t)

	code, body := get(t, app, "/trakt/shows/30857")
	assert.Equal(t, 200, code)
	var a models.Anime
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, "Cowboy Bebop", a.Title)

	// singular type is normalized
	code, _ = get(t, app, "/trakt/show/30857/seasons/1")
	assert.Equal(t, 200, code)

	code, _ = get(t, app, "/trakt/movie/126")
	assert.Equal(t, 200, code)

	code, _ = get(t, app, "/trakt/shows/30857/seasons/0")
	assert.Equal(t, 400, code)

	code, _ = get(t, app, "/trakt/shows/30857/seasons/4")
	assert.Equal(t, 404, code)
}

func TestHandleTmdb(t *testing.T) {
	app := setupTestApp(t)

	code, body := get(t, app, "/themoviedb/movie/149")
	assert.Equal(t, 200, code)
	var a models.Anime
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, "Akira", a.Title)

	code, _ = get(t, app, "/themoviedb/tv/149")
	assert.Equal(t, 400, code)

	code, _ = get(t, app, "/themoviedb/movie/149/season/1")
	assert.Equal(t, 400, code)

	code, _ = get(t, app, "/themoviedb/movie/999999")
	assert.Equal(t, 404, code)
}

func TestHandlePlatformArray(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/animeapi.tsv", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "tab-separated-values")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "title\t"))

	code, _ := get(t, app, "/myanimelist")
	assert.Equal(t, 200, code)

	code, _ = get(t, app, "/animeapi")
	assert.Equal(t, 200, code)

	code, _ = get(t, app, "/letterboxd")
	assert.Equal(t, 404, code)
}

func TestHandleRedirect(t *testing.T) {
	app := setupTestApp(t)

	location := func(path string) (int, string) {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		return resp.StatusCode, resp.Header.Get("Location")
	}

	code, loc := location("/rd?platform=myanimelist&mediaid=1&target=anidb")
	assert.Equal(t, fiber.StatusFound, code)
	assert.Equal(t, "https://anidb.net/anime/23", loc)

	// synonyms on both sides
	code, loc = location("/redirect?from=mal&id=1&to=adb")
	assert.Equal(t, fiber.StatusFound, code)
	assert.Equal(t, "https://anidb.net/anime/23", loc)

	// trakt target builds the composite path
	code, loc = location("/rd?platform=mal&mediaid=1&target=trakt")
	assert.Equal(t, fiber.StatusFound, code)
	assert.Equal(t, "https://trakt.tv/shows/30857/seasons/1", loc)

	// simkl resolves through the aniDB ID
	code, loc = location("/rd?platform=mal&mediaid=1&target=simkl")
	assert.Equal(t, fiber.StatusFound, code)
	assert.Equal(t, "https://api.simkl.com/redirect?to=Simkl&anidb=23", loc)

	// no target redirects straight to the platform page
	code, loc = location("/rd?platform=mal&mediaid=1")
	assert.Equal(t, fiber.StatusFound, code)
	assert.Equal(t, "https://myanimelist.net/anime/1", loc)

	// raw returns the URL as text
	rawCode, body := get(t, app, "/rd?platform=mal&mediaid=1&target=anidb&raw=1")
	assert.Equal(t, 200, rawCode)
	assert.Equal(t, "https://anidb.net/anime/23", string(body))

	// akira has no aniDB id, so simkl cannot resolve
	code4, _ := get(t, app, "/rd?platform=mal&mediaid=47&target=simkl")
	assert.Equal(t, 404, code4)

	// target field null on the record
	code5, _ := get(t, app, "/rd?platform=mal&mediaid=47&target=anidb")
	assert.Equal(t, 404, code5)

	code6, _ := get(t, app, "/rd?platform=letterboxd&mediaid=1")
	assert.Equal(t, 400, code6)

	code7, _ := get(t, app, "/rd?platform=mal")
	assert.Equal(t, 400, code7)

	code8, _ := get(t, app, "/rd?platform=mal&mediaid=1&target=letterboxd")
	assert.Equal(t, 400, code8)
}
