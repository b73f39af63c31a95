package models

// Anime is the unified cross-reference record for a single title.
// Every platform key is present in the JSON projection even when unknown;
// nullable identifiers are pointers so "unknown" serializes as null rather
// than a missing key. Field order here defines both the JSON key order and
// the TSV column order.
type Anime struct {
	// Title is the display name and the fallback match key. Never empty.
	Title string `json:"title"`

	// AniDB is the numeric aniDB anime ID.
	AniDB *int `json:"anidb"`

	// AniList is the numeric AniList anime ID.
	AniList *int `json:"anilist"`

	// AnimePlanet is the Anime-Planet slug.
	AnimePlanet *string `json:"animeplanet"`

	// AniSearch is the numeric aniSearch ID.
	AniSearch *int `json:"anisearch"`

	// Annict is the numeric Annict work ID.
	Annict *int `json:"annict"`

	// IMDB is the IMDb title ID (tt-prefixed).
	IMDB *string `json:"imdb"`

	// Kaize is the Kaize slug; KaizeID is its numeric media ID when known.
	Kaize   *string `json:"kaize"`
	KaizeID *int    `json:"kaize_id"`

	// Kitsu is the numeric Kitsu anime ID.
	Kitsu *int `json:"kitsu"`

	// LiveChart is the numeric LiveChart ID.
	LiveChart *int `json:"livechart"`

	// MyAnimeList is the numeric MyAnimeList ID.
	MyAnimeList *int `json:"myanimelist"`

	// Nautiljon is the Nautiljon slug; NautiljonID its numeric entry ID.
	Nautiljon   *string `json:"nautiljon"`
	NautiljonID *int    `json:"nautiljon_id"`

	// Notify is the Notify.moe base64 ID.
	Notify *string `json:"notify"`

	// OtakOtaku is the numeric Otak Otaku anime ID.
	OtakOtaku *int `json:"otakotaku"`

	// Shikimori mirrors MyAnimeList; it is never independently sourced.
	Shikimori *int `json:"shikimori"`

	// Shoboi is the numeric Syobocal TID.
	Shoboi *int `json:"shoboi"`

	// SilverYasha is the numeric Silver Yasha DBTI ID.
	SilverYasha *int `json:"silveryasha"`

	// TheMovieDB is the numeric TMDB movie ID. Only movies are supported.
	TheMovieDB *int `json:"themoviedb"`

	// Trakt is the numeric Trakt ID. TraktType is "movies" or "shows";
	// TraktSeason is set only for shows. All three are null together or
	// not at all, except season which stays null for movies.
	Trakt       *int    `json:"trakt"`
	TraktType   *string `json:"trakt_type"`
	TraktSeason *int    `json:"trakt_season"`
}

// MirrorShikimori copies the MyAnimeList ID onto the Shikimori field.
// Call after any stage that may have touched MyAnimeList.
func (a *Anime) MirrorShikimori() {
	a.Shikimori = a.MyAnimeList
}

// Int returns a pointer to v. Convenience for literal records.
func Int(v int) *int { return &v }

// Str returns a pointer to v.
func Str(v string) *string { return &v }
