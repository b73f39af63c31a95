package models

import (
	"fmt"
	"strconv"
)

// Platform describes one target catalog service. Export, validation and the
// lookup redirect route all consult this table instead of branching on the
// service name.
type Platform struct {
	// Name is the canonical service key, as used in JSON fields and
	// artifact file names.
	Name string

	// Display is the human-readable service name.
	Display string

	// Synonyms are accepted aliases for routing (lowercase).
	Synonyms []string

	// URLPrefix is the canonical site URL an ID is appended to when
	// building redirects. Empty for services with composite URLs.
	URLPrefix string

	// ID returns the record's identifier on this service as a string.
	// ok is false when the record has no entry on the service.
	ID func(a *Anime) (id string, ok bool)

	// ObjectKeys returns every object-map key the record should be
	// reachable under. Nil when the record does not belong to this
	// service's bucket. Most services have exactly one key; trakt
	// season 1 adds an un-seasoned alias.
	ObjectKeys func(a *Anime) []string
}

func intID(get func(a *Anime) *int) func(a *Anime) (string, bool) {
	return func(a *Anime) (string, bool) {
		v := get(a)
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	}
}

func strID(get func(a *Anime) *string) func(a *Anime) (string, bool) {
	return func(a *Anime) (string, bool) {
		v := get(a)
		if v == nil {
			return "", false
		}
		return *v, true
	}
}

func scalarKeys(id func(a *Anime) (string, bool)) func(a *Anime) []string {
	return func(a *Anime) []string {
		s, ok := id(a)
		if !ok {
			return nil
		}
		return []string{s}
	}
}

// TraktKeys builds the composite trakt object-map keys for a record.
// Movies map to "{type}/{id}". Shows map to
// "{type}/{id}/seasons/{season}", plus a bare "{type}/{id}" alias when the
// season is 1 so season one is reachable with and without the suffix.
func TraktKeys(a *Anime) []string {
	if a.Trakt == nil || a.TraktType == nil {
		return nil
	}
	base := fmt.Sprintf("%s/%d", *a.TraktType, *a.Trakt)
	switch *a.TraktType {
	case "movie", "movies":
		return []string{base}
	}
	if a.TraktSeason == nil {
		return nil
	}
	keys := []string{}
	if *a.TraktSeason == 1 {
		keys = append(keys, base)
	}
	return append(keys, fmt.Sprintf("%s/seasons/%d", base, *a.TraktSeason))
}

// Platforms lists every exported service in artifact order.
var Platforms = []Platform{
	{
		Name:      "anidb",
		Display:   "aniDB",
		Synonyms:  []string{"adb", "anidb.net"},
		URLPrefix: "https://anidb.net/anime/",
		ID:        intID(func(a *Anime) *int { return a.AniDB }),
	},
	{
		Name:      "anilist",
		Display:   "AniList",
		Synonyms:  []string{"al", "anilist.co"},
		URLPrefix: "https://anilist.co/anime/",
		ID:        intID(func(a *Anime) *int { return a.AniList }),
	},
	{
		Name:      "animeplanet",
		Display:   "Anime-Planet",
		Synonyms:  []string{"ap", "anime-planet", "anime-planet.com"},
		URLPrefix: "https://www.anime-planet.com/anime/",
		ID:        strID(func(a *Anime) *string { return a.AnimePlanet }),
	},
	{
		Name:    "anisearch",
		Display: "aniSearch",
		Synonyms: []string{"as", "anisearch.com", "anisearch.de", "anisearch.fr",
			"anisearch.jp", "anisearch.es", "anisearch.it"},
		URLPrefix: "https://www.anisearch.com/anime/",
		ID:        intID(func(a *Anime) *int { return a.AniSearch }),
	},
	{
		Name:      "annict",
		Display:   "Annict",
		Synonyms:  []string{"anc", "act", "ac", "annict.com", "annict.jp", "en.annict.com"},
		URLPrefix: "https://annict.com/works/",
		ID:        intID(func(a *Anime) *int { return a.Annict }),
	},
	{
		Name:      "imdb",
		Display:   "IMDb",
		Synonyms:  []string{"imdb.com"},
		URLPrefix: "https://www.imdb.com/title/",
		ID:        strID(func(a *Anime) *string { return a.IMDB }),
	},
	{
		Name:      "kaize",
		Display:   "Kaize",
		Synonyms:  []string{"kz", "kaize.io"},
		URLPrefix: "https://kaize.io/anime/",
		ID:        strID(func(a *Anime) *string { return a.Kaize }),
	},
	{
		Name:      "kitsu",
		Display:   "Kitsu",
		Synonyms:  []string{"kts", "kt", "kitsu.io"},
		URLPrefix: "https://kitsu.io/anime/",
		ID:        intID(func(a *Anime) *int { return a.Kitsu }),
	},
	{
		Name:      "livechart",
		Display:   "LiveChart",
		Synonyms:  []string{"lc", "livechart.me"},
		URLPrefix: "https://www.livechart.me/anime/",
		ID:        intID(func(a *Anime) *int { return a.LiveChart }),
	},
	{
		Name:      "myanimelist",
		Display:   "MyAnimeList",
		Synonyms:  []string{"mal", "myanimelist.net"},
		URLPrefix: "https://myanimelist.net/anime/",
		ID:        intID(func(a *Anime) *int { return a.MyAnimeList }),
	},
	{
		Name:      "nautiljon",
		Display:   "Nautiljon",
		Synonyms:  []string{"ntj", "nautiljon.com"},
		URLPrefix: "https://www.nautiljon.com/animes/",
		ID:        strID(func(a *Anime) *string { return a.Nautiljon }),
	},
	{
		Name:      "notify",
		Display:   "Notify.moe",
		Synonyms:  []string{"ntf", "ntm", "nm", "nf", "notifymoe", "notify.moe"},
		URLPrefix: "https://notify.moe/anime/",
		ID:        strID(func(a *Anime) *string { return a.Notify }),
	},
	{
		Name:      "otakotaku",
		Display:   "Otak Otaku",
		Synonyms:  []string{"oo", "otakotaku.com"},
		URLPrefix: "https://otakotaku.com/anime/view/",
		ID:        intID(func(a *Anime) *int { return a.OtakOtaku }),
	},
	{
		Name:      "shikimori",
		Display:   "Shikimori",
		Synonyms:  []string{"shiki", "shk", "shikimori.org", "shikimori.one", "shikimori.me"},
		URLPrefix: "https://shikimori.one/animes/",
		ID:        intID(func(a *Anime) *int { return a.Shikimori }),
	},
	{
		Name:      "shoboi",
		Display:   "Shoboi/Syobocal",
		Synonyms:  []string{"shobocal", "syoboi", "syobocal", "syb", "shb", "sb", "cal.syoboi.jp"},
		URLPrefix: "https://cal.syoboi.jp/tid/",
		ID:        intID(func(a *Anime) *int { return a.Shoboi }),
	},
	{
		Name:      "silveryasha",
		Display:   "Silver Yasha",
		Synonyms:  []string{"dbti", "sy", "db.silveryasha.web.id"},
		URLPrefix: "https://db.silveryasha.web.id/anime/",
		ID:        intID(func(a *Anime) *int { return a.SilverYasha }),
	},
	{
		Name:       "trakt",
		Display:    "Trakt",
		Synonyms:   []string{"trk", "trakt.tv"},
		URLPrefix:  "https://trakt.tv/",
		ID:         intID(func(a *Anime) *int { return a.Trakt }),
		ObjectKeys: TraktKeys,
	},
	{
		Name:      "themoviedb",
		Display:   "The Movie Database",
		Synonyms:  []string{"tmdb", "tmdb.org"},
		URLPrefix: "https://www.themoviedb.org/movie/",
		ID:        intID(func(a *Anime) *int { return a.TheMovieDB }),
		ObjectKeys: func(a *Anime) []string {
			if a.TheMovieDB == nil {
				return nil
			}
			return []string{fmt.Sprintf("movie/%d", *a.TheMovieDB)}
		},
	},
}

func init() {
	for i := range Platforms {
		if Platforms[i].ObjectKeys == nil {
			Platforms[i].ObjectKeys = scalarKeys(Platforms[i].ID)
		}
	}
}

// ByName resolves a platform by canonical name or synonym.
func ByName(name string) (*Platform, bool) {
	for i := range Platforms {
		p := &Platforms[i]
		if p.Name == name {
			return p, true
		}
		for _, s := range p.Synonyms {
			if s == name {
				return p, true
			}
		}
	}
	return nil, false
}
