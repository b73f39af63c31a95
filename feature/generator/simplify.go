package generator

import (
	"strconv"
	"strings"

	"animeapi/feature/generator/models"
	"animeapi/feature/generator/sources"
)

// sourceRule maps one upstream URI prefix to an anchor field setter. The
// assignment runs on the last path segment of the URI.
type sourceRule struct {
	prefix string
	assign func(a *models.Anime, tail string)
}

func intRule(set func(a *models.Anime, v *int)) func(a *models.Anime, tail string) {
	return func(a *models.Anime, tail string) {
		id, err := strconv.Atoi(tail)
		if err != nil {
			return
		}
		set(a, models.Int(id))
	}
}

var sourceRules = []sourceRule{
	{"https://anidb.net/anime/", intRule(func(a *models.Anime, v *int) { a.AniDB = v })},
	{"https://anilist.co/anime/", intRule(func(a *models.Anime, v *int) { a.AniList = v })},
	{"https://anime-planet.com/anime/", func(a *models.Anime, tail string) { a.AnimePlanet = models.Str(tail) }},
	{"https://anisearch.com/anime/", intRule(func(a *models.Anime, v *int) { a.AniSearch = v })},
	{"https://kitsu.io/anime/", intRule(func(a *models.Anime, v *int) { a.Kitsu = v })},
	{"https://livechart.me/anime/", intRule(func(a *models.Anime, v *int) { a.LiveChart = v })},
	{"https://myanimelist.net/anime/", intRule(func(a *models.Anime, v *int) { a.MyAnimeList = v })},
	{"https://notify.moe/anime/", func(a *models.Anime, tail string) { a.Notify = models.Str(tail) }},
}

// Simplify projects the raw aggregated database onto the canonical anchor
// set. Each entry becomes one anchor record carrying the IDs recoverable
// from its source URIs; everything else starts null. Shikimori mirrors
// MyAnimeList from the start.
func Simplify(aod *sources.AOD) []*models.Anime {
	anchors := make([]*models.Anime, 0, len(aod.Data))
	for _, item := range aod.Data {
		a := &models.Anime{Title: item.Title}
		for _, uri := range item.Sources {
			for _, rule := range sourceRules {
				if strings.HasPrefix(uri, rule.prefix) {
					tail := uri[strings.LastIndex(uri, "/")+1:]
					rule.assign(a, tail)
					break
				}
			}
		}
		a.MirrorShikimori()
		anchors = append(anchors, a)
	}
	return anchors
}
