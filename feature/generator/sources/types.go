package sources

// AOD is the raw anime-offline-database document, the anchor dataset.
type AOD struct {
	Data []AODItem `json:"data"`
}

// AODItem is one anchor entry: a display title plus the source URIs the
// aggregated database already resolved for it.
type AODItem struct {
	Title   string   `json:"title"`
	Sources []string `json:"sources"`
}

// ArmItem is one kawaiioverflow/arm entry, keyed by MAL or AniList ID.
type ArmItem struct {
	MalID       *int `json:"mal_id"`
	AnilistID   *int `json:"anilist_id"`
	SyobocalTID *int `json:"syobocal_tid"`
	AnnictID    *int `json:"annict_id"`
}

// AniTraktItem is one aniTrakt-IndexParser entry, keyed by MAL ID. Season is
// null for movies; the fetcher normalizes the movie feed that way.
type AniTraktItem struct {
	Title   string `json:"title"`
	MalID   *int   `json:"mal_id"`
	TraktID *int   `json:"trakt_id"`
	Type    string `json:"type"`
	Season  *int   `json:"season"`
}

// FribbItem is one Fribb's Animelists entry, keyed by AniDB ID.
// TheMovieDB is loosely typed upstream: a number, or a comma-joined string
// of several movie IDs.
type FribbItem struct {
	AnidbID    *int    `json:"anidb_id"`
	ImdbID     *string `json:"imdb_id"`
	TheMovieDB any     `json:"themoviedb_id"`
}

// SilverYashaAnime is a simplified Silver Yasha DBTI entry.
type SilverYashaAnime struct {
	Title       string  `json:"title"`
	AltTitles   *string `json:"alternative_titles"`
	SilverYasha int     `json:"silveryasha"`
	MyAnimeList *int    `json:"myanimelist"`
}

// KaizeAnime is one scraped Kaize index entry. Kaize is the numeric media
// ID recovered from the cover image URL; 0 when it could not be parsed.
type KaizeAnime struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Kaize int    `json:"kaize"`
}

// NautiljonAnime is one scraped Nautiljon index entry.
type NautiljonAnime struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	EntryID *int   `json:"entry_id"`
}

// OtakOtakuAnime is one Otak Otaku API entry. The upstream view API exposes
// several foreign IDs alongside its own.
type OtakOtakuAnime struct {
	OtakOtaku        int    `json:"otakotaku"`
	Title            string `json:"title"`
	MyAnimeList      *int   `json:"myanimelist"`
	AnimePlanet      *int   `json:"animeplanet"`
	AniDB            *int   `json:"anidb"`
	AnimeNewsNetwork *int   `json:"animenewsnetwork"`
}
