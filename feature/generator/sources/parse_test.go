package sources

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

// TestParseKaizeIndex tests extracting entries from a top-anime listing page.
func TestParseKaizeIndex(t *testing.T) {
	html := `
	<div class="anime-list-element">
		<div class="rank">#1</div>
		<div class="cover" style="background-image: url('/storage/anime_image_4392.webp')"></div>
		<a class="name" href="/anime/fullmetal-alchemist-brotherhood">Fullmetal Alchemist: Brotherhood</a>
	</div>
	<div class="anime-list-element">
		<div class="rank">#2</div>
		<div class="cover"></div>
		<a class="name" href="/anime/steins-gate">Steins;Gate</a>
	</div>
	<div class="anime-list-element">
		<a class="name" href="/anime/nameless"></a>
	</div>`

	entries := ParseKaizeIndex(doc(t, html))

	require.Len(t, entries, 2)
	assert.Equal(t, KaizeAnime{Rank: 1, Title: "Fullmetal Alchemist: Brotherhood", Slug: "fullmetal-alchemist-brotherhood", Kaize: 4392}, entries[0])
	assert.Equal(t, KaizeAnime{Rank: 2, Title: "Steins;Gate", Slug: "steins-gate", Kaize: 0}, entries[1])
}

// TestParseNautiljonIndex tests extracting entries from one index table page.
func TestParseNautiljonIndex(t *testing.T) {
	html := `
	<table><tbody>
	<tr>
		<td><a href="/animes/cowboy+bebop.html"><img src="/images/anime/mini/cowboy+bebop_12345.webp"></a></td>
		<td><a href="/animes/cowboy+bebop.html">Cowboy Bebop</a></td>
	</tr>
	<tr>
		<td><a href="/animes/akira.html"></a></td>
		<td><a href="/animes/akira.html">Akira</a></td>
	</tr>
	<tr><td>spacer</td></tr>
	</tbody></table>`

	entries := ParseNautiljonIndex(doc(t, html))

	require.Len(t, entries, 2)
	assert.Equal(t, "Cowboy Bebop", entries[0].Title)
	assert.Equal(t, "cowboy+bebop", entries[0].Slug)
	require.NotNil(t, entries[0].EntryID)
	assert.Equal(t, 12345, *entries[0].EntryID)
	assert.Equal(t, "akira", entries[1].Slug)
	assert.Nil(t, entries[1].EntryID)
}
