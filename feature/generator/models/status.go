package models

// Updated carries both representations of the last successful export time.
type Updated struct {
	Timestamp int64  `json:"timestamp"`
	ISO       string `json:"iso"`
}

// Status is the status.json document: attribution, per-platform counts and
// the route patterns the lookup service answers.
type Status struct {
	MainRepo     string            `json:"mainrepo"`
	Updated      Updated           `json:"updated"`
	Contributors []string          `json:"contributors"`
	Sources      []string          `json:"sources"`
	License      string            `json:"license"`
	Website      string            `json:"website"`
	Counts       map[string]int    `json:"counts"`
	Endpoints    map[string]string `json:"endpoints"`
}

// DefaultStatus returns the attribution seed. The exporter fills in the
// timestamps, counts and live contributor list.
func DefaultStatus() *Status {
	return &Status{
		MainRepo: "https://github.com/nattadasu/animeApi/tree/v3",
		Contributors: []string{
			"nattadasu",
		},
		Sources: []string{
			"manami-project/anime-offline-database",
			"kawaiioverflow/arm",
			"ryuuganime/aniTrakt-IndexParser",
			"https://db.silveryasha.web.id",
			"https://kaize.io",
			"https://nautiljon.com",
			"https://otakotaku.com",
		},
		License: "AGPL-3.0",
		Website: "https://animeapi.my.id",
		Counts:  map[string]int{},
		Endpoints: map[string]string{
			"$comment":     "The endpoints are stated in Python regex format",
			"anidb":        `/anidb/(?P<media_id>\d+)`,
			"anilist":      `/anilist/(?P<media_id>\d+)`,
			"animeapi_tsv": `/anime(a|A)pi.tsv`,
			"animeplanet":  `/animeplanet/(?P<media_id>[\w\-]+)`,
			"anisearch":    `/anisearch/(?P<media_id>\d+)`,
			"annict":       `/annict/(?P<media_id>\d+)`,
			"heartbeat":    `/(heartbeat|ping)`,
			"imdb":         `/imdb/(?P<media_id>tt[\d]+)`,
			"kaize":        `/kaize/(?P<media_id>[\w\-]+)`,
			"kitsu":        `/kitsu/(?P<media_id>\d+)`,
			"livechart":    `/livechart/(?P<media_id>\d+)`,
			"myanimelist":  `/myanimelist/(?P<media_id>\d+)`,
			"nautiljon":    `/nautiljon/(?P<media_id>[\w\+!\-_\(\)\[\]]+)`,
			"notify":       `/notify/(?P<media_id>[\w\-_]+)`,
			"otakotaku":    `/otakotaku/(?P<media_id>\d+)`,
			"repo":         `/`,
			"schema":       `/schema(?:.json)?`,
			"shikimori":    `/shikimori/(?P<media_id>\d+)`,
			"shoboi":       `/shoboi/(?P<media_id>\d+)`,
			"silveryasha":  `/silveryasha/(?P<media_id>\d+)`,
			"status":       `/status`,
			"syobocal":     `/syobocal/(?P<media_id>\d+)`,
			"themoviedb":   `/themoviedb/movie/(?P<media_id>\d+)`,
			"trakt":        `/trakt/(?P<media_type>show|movie)(s)?/(?P<media_id>\d+)(?:/season(s)?/(?P<season_id>\d+))?`,
			"updated":      `/updated`,
		},
	}
}
