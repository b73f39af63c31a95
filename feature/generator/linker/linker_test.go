package linker

import (
	"strings"
	"testing"

	"animeapi/feature/generator/models"
	"animeapi/feature/generator/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func anchor(title string) *models.Anime {
	return &models.Anime{Title: title}
}

// TestLink_ExactStage tests that a slugified anchor title joins a Kaize
// entry with the matching slug.
func TestLink_ExactStage(t *testing.T) {
	anchors := []*models.Anime{anchor("Dr. STONE"), anchor("Cowboy Bebop")}
	src := NewKaizeAdapter([]sources.KaizeAnime{
		{Rank: 1, Title: "Dr. Stone", Slug: "dr-stone", Kaize: 42},
	}, nil)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Equal(t, 1, res.Linked)
	assert.Empty(t, res.Unlinked)
	require.NotNil(t, anchors[0].Kaize)
	assert.Equal(t, "dr-stone", *anchors[0].Kaize)
	require.NotNil(t, anchors[0].KaizeID)
	assert.Equal(t, 42, *anchors[0].KaizeID)
	assert.Nil(t, anchors[1].Kaize)
}

// TestLink_SlugStage tests that punctuation drift between the anchor title
// and the entry slug is absorbed by the normalized-slug stage.
func TestLink_SlugStage(t *testing.T) {
	anchors := []*models.Anime{anchor("Sword Art Online")}
	src := NewKaizeAdapter([]sources.KaizeAnime{
		{Title: "Sword Art Online", Slug: "swordartonline", Kaize: 7},
	}, nil)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Equal(t, 1, res.Linked)
	require.NotNil(t, anchors[0].Kaize)
	assert.Equal(t, "swordartonline", *anchors[0].Kaize)
}

// TestLink_FuzzyThreshold tests the acceptance boundary of the fuzzy stage.
// With 20-rune titles the ratio is 2*matched/40, so 17 shared runes score
// exactly 85 and 16 score 80.
func TestLink_FuzzyThreshold(t *testing.T) {
	base := strings.Repeat("a", 20)

	tests := []struct {
		name   string
		title  string
		linked bool
	}{
		{name: "at threshold", title: strings.Repeat("a", 17) + "xyz", linked: true},
		{name: "below threshold", title: strings.Repeat("a", 16) + "wxyz", linked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchors := []*models.Anime{anchor(base)}
			src := NewNautiljonAdapter([]sources.NautiljonAnime{
				{Title: tt.title, Slug: tt.title, EntryID: models.Int(1)},
			}, nil)

			res := Link(src, anchors, Options{}, zap.NewNop())

			if tt.linked {
				assert.Equal(t, 1, res.Linked)
				assert.NotNil(t, anchors[0].Nautiljon)
			} else {
				assert.Zero(t, res.Linked)
				assert.Nil(t, anchors[0].Nautiljon)
				assert.Len(t, res.Unlinked, 1)
			}
		})
	}
}

// TestLink_FuzzyBestMatch tests that the fuzzy stage picks the highest
// scoring anchor, not the first one above the threshold.
func TestLink_FuzzyBestMatch(t *testing.T) {
	near := strings.Repeat("a", 17) + "xyz"
	exacter := strings.Repeat("a", 19) + "x"
	anchors := []*models.Anime{anchor(near), anchor(exacter)}

	src := NewNautiljonAdapter([]sources.NautiljonAnime{
		{Title: strings.Repeat("a", 20), Slug: "zzzz", EntryID: models.Int(9)},
	}, nil)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Equal(t, 1, res.Linked)
	assert.Nil(t, anchors[0].Nautiljon)
	assert.NotNil(t, anchors[1].Nautiljon)
}

// TestLink_StageOrder tests that an exact hit wins before fuzzy gets a
// chance to place the record elsewhere.
func TestLink_StageOrder(t *testing.T) {
	anchors := []*models.Anime{anchor("Gintama"), anchor("Gintamaa")}
	src := NewNautiljonAdapter([]sources.NautiljonAnime{
		{Title: "Gintama", Slug: "gintama", EntryID: models.Int(3)},
	}, nil)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Equal(t, 1, res.Linked)
	assert.NotNil(t, anchors[0].Nautiljon)
	assert.Nil(t, anchors[1].Nautiljon)
}

// TestLink_MalKeyPreferred tests that Otak Otaku entries with a MAL ID join
// on it even when the localized title matches nothing.
func TestLink_MalKeyPreferred(t *testing.T) {
	a := anchor("Fullmetal Alchemist: Brotherhood")
	a.MyAnimeList = models.Int(5114)
	a.Shikimori = models.Int(5114)
	anchors := []*models.Anime{a}

	src := NewOtakOtakuAdapter([]sources.OtakOtakuAnime{
		{OtakOtaku: 11, Title: "FMA B (judul lokal)", MyAnimeList: models.Int(5114)},
	}, nil)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Equal(t, 1, res.Linked)
	require.NotNil(t, a.OtakOtaku)
	assert.Equal(t, 11, *a.OtakOtaku)
}

// TestLink_ManualOverride tests that a curated override applies to the
// anchor and retires the matching record from the residue.
func TestLink_ManualOverride(t *testing.T) {
	anchors := []*models.Anime{anchor("Totally Different Name")}
	src := NewSilverYashaAdapter(
		[]sources.SilverYashaAnime{{Title: "Nama Lain Sama Sekali", SilverYasha: 99}},
		map[string]int{"Totally Different Name": 99},
	)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Equal(t, 1, res.Linked)
	assert.Empty(t, res.Unlinked)
	require.NotNil(t, anchors[0].SilverYasha)
	assert.Equal(t, 99, *anchors[0].SilverYasha)
}

// TestLink_ManualOverrideWithoutRecord tests that an override still enriches
// the anchor when the entry never appeared in the scrape.
func TestLink_ManualOverrideWithoutRecord(t *testing.T) {
	anchors := []*models.Anime{anchor("Obscure OVA")}
	src := NewKaizeAdapter(nil, map[string]sources.KaizeOverride{
		"Obscure OVA": {Kaize: "obscure-ova", KaizeID: models.Int(1234)},
	})

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Zero(t, res.Linked)
	require.NotNil(t, anchors[0].Kaize)
	assert.Equal(t, "obscure-ova", *anchors[0].Kaize)
	require.NotNil(t, anchors[0].KaizeID)
	assert.Equal(t, 1234, *anchors[0].KaizeID)
}

// TestLink_Residue tests that records no stage could place come back in the
// unlinked artifact with their source fields intact.
func TestLink_Residue(t *testing.T) {
	anchors := []*models.Anime{anchor("Neon Genesis Evangelion")}
	src := NewKaizeAdapter([]sources.KaizeAnime{
		{Rank: 5, Title: "Zettai Muri na Title", Slug: "zettai-muri-na-title", Kaize: 8},
	}, nil)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Zero(t, res.Linked)
	require.Len(t, res.Unlinked, 1)
	assert.Equal(t, "zettai-muri-na-title", res.Unlinked[0]["slug"])
	assert.Equal(t, 5, res.Unlinked[0]["rank"])
}

// TestLink_AlreadyLinkedAnchorSkipped tests that anchors carrying the
// source's ID from a previous run never contest the join keys again.
func TestLink_AlreadyLinkedAnchorSkipped(t *testing.T) {
	linked := anchor("Bleach")
	linked.Kaize = models.Str("bleach")
	fresh := anchor("Bleach")
	anchors := []*models.Anime{linked, fresh}

	src := NewKaizeAdapter([]sources.KaizeAnime{
		{Title: "Bleach", Slug: "bleach", Kaize: 2},
	}, nil)

	res := Link(src, anchors, Options{}, zap.NewNop())

	assert.Equal(t, 1, res.Linked)
	assert.NotNil(t, fresh.Kaize)
	assert.Nil(t, linked.KaizeID)
}

// TestNormalizeSlug tests punctuation and case collapsing.
func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "drstone", NormalizeSlug("Dr. STONE"))
	assert.Equal(t, "drstone", NormalizeSlug("dr-stone"))
	assert.Equal(t, "86eightysix", NormalizeSlug("86: Eighty Six"))
}
