package combiner

import (
	"testing"

	"animeapi/feature/generator/models"
	"animeapi/feature/generator/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestCombineArm_MalJoin tests the primary MAL ID join, including the
// AniList backfill.
func TestCombineArm_MalJoin(t *testing.T) {
	a := &models.Anime{Title: "Shirobako", MyAnimeList: models.Int(25835), Shikimori: models.Int(25835)}
	items := []sources.ArmItem{
		{MalID: models.Int(25835), AnilistID: models.Int(20812), SyobocalTID: models.Int(3584), AnnictID: models.Int(346)},
	}

	CombineArm([]*models.Anime{a}, items, zap.NewNop())

	require.NotNil(t, a.Shoboi)
	assert.Equal(t, 3584, *a.Shoboi)
	require.NotNil(t, a.Annict)
	assert.Equal(t, 346, *a.Annict)
	require.NotNil(t, a.AniList)
	assert.Equal(t, 20812, *a.AniList)
}

// TestCombineArm_AnilistFallback tests that anchors without a MAL ID still
// join on AniList, and pick up the MAL ID with its Shikimori mirror.
func TestCombineArm_AnilistFallback(t *testing.T) {
	a := &models.Anime{Title: "Some Web Anime", AniList: models.Int(20812)}
	items := []sources.ArmItem{
		{MalID: models.Int(25835), AnilistID: models.Int(20812), AnnictID: models.Int(346)},
	}

	CombineArm([]*models.Anime{a}, items, zap.NewNop())

	require.NotNil(t, a.MyAnimeList)
	assert.Equal(t, 25835, *a.MyAnimeList)
	require.NotNil(t, a.Shikimori)
	assert.Equal(t, 25835, *a.Shikimori)
	require.NotNil(t, a.Annict)
	assert.Equal(t, 346, *a.Annict)
}

// TestCombineArm_MissPinsNull tests that a miss nulls the arm-sourced
// fields rather than leaving them untouched.
func TestCombineArm_MissPinsNull(t *testing.T) {
	a := &models.Anime{Title: "Unknown", MyAnimeList: models.Int(1), Shoboi: models.Int(7)}

	CombineArm([]*models.Anime{a}, nil, zap.NewNop())

	assert.Nil(t, a.Shoboi)
	assert.Nil(t, a.Annict)
}

// TestCombineAniTrakt tests the show and movie join shapes.
func TestCombineAniTrakt(t *testing.T) {
	show := &models.Anime{Title: "Mushishi", MyAnimeList: models.Int(457)}
	movie := &models.Anime{Title: "Redline", MyAnimeList: models.Int(6675)}
	miss := &models.Anime{Title: "Nothing", MyAnimeList: models.Int(999999)}

	items := []sources.AniTraktItem{
		{Title: "Mushishi", MalID: models.Int(457), TraktID: models.Int(1072), Type: "shows", Season: models.Int(1)},
		{Title: "Redline", MalID: models.Int(6675), TraktID: models.Int(13051), Type: "movies", Season: nil},
	}

	CombineAniTrakt([]*models.Anime{show, movie, miss}, items, zap.NewNop())

	require.NotNil(t, show.Trakt)
	assert.Equal(t, 1072, *show.Trakt)
	assert.Equal(t, "shows", *show.TraktType)
	require.NotNil(t, show.TraktSeason)
	assert.Equal(t, 1, *show.TraktSeason)

	require.NotNil(t, movie.Trakt)
	assert.Equal(t, "movies", *movie.TraktType)
	assert.Nil(t, movie.TraktSeason)

	assert.Nil(t, miss.Trakt)
	assert.Nil(t, miss.TraktType)
	assert.Nil(t, miss.TraktSeason)
}

// TestCombineFribb_TmdbCoercion tests the loosely typed TMDB column.
func TestCombineFribb_TmdbCoercion(t *testing.T) {
	tests := []struct {
		name   string
		tmdb   any
		expect *int
	}{
		{name: "number", tmdb: float64(429), expect: models.Int(429)},
		{name: "comma list keeps first", tmdb: "557,558", expect: models.Int(557)},
		{name: "garbage is null", tmdb: "n/a", expect: nil},
		{name: "absent is null", tmdb: nil, expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &models.Anime{Title: "X", AniDB: models.Int(100)}
			items := []sources.FribbItem{
				{AnidbID: models.Int(100), ImdbID: models.Str("tt0012345"), TheMovieDB: tt.tmdb},
			}

			CombineFribb([]*models.Anime{a}, items, zap.NewNop())

			require.NotNil(t, a.IMDB)
			assert.Equal(t, "tt0012345", *a.IMDB)
			if tt.expect == nil {
				assert.Nil(t, a.TheMovieDB)
			} else {
				require.NotNil(t, a.TheMovieDB)
				assert.Equal(t, *tt.expect, *a.TheMovieDB)
			}
		})
	}
}

// TestCombineFribb_NoAnidb tests that anchors without an aniDB ID are left
// alone.
func TestCombineFribb_NoAnidb(t *testing.T) {
	a := &models.Anime{Title: "X"}
	items := []sources.FribbItem{{AnidbID: models.Int(100), ImdbID: models.Str("tt1")}}

	CombineFribb([]*models.Anime{a}, items, zap.NewNop())

	assert.Nil(t, a.IMDB)
	assert.Nil(t, a.TheMovieDB)
}
