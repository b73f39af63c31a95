package combiner

import (
	"strconv"
	"strings"

	"animeapi/feature/generator/models"
	"animeapi/feature/generator/sources"

	"go.uber.org/zap"
)

// CombineArm merges kawaiioverflow/arm relations into the anchor set. The
// join runs on MAL ID first and AniList ID second, so entries known only to
// AniList still pick up their Syobocal and Annict IDs. Anchors untouched by
// any entry get their four arm-sourced fields pinned to null.
func CombineArm(anchors []*models.Anime, items []sources.ArmItem, log *zap.Logger) {
	byMal := make(map[int]sources.ArmItem, len(items))
	byAnilist := make(map[int]sources.ArmItem, len(items))
	for _, it := range items {
		if it.MalID != nil {
			if _, taken := byMal[*it.MalID]; !taken {
				byMal[*it.MalID] = it
			}
		}
		if it.AnilistID != nil {
			if _, taken := byAnilist[*it.AnilistID]; !taken {
				byAnilist[*it.AnilistID] = it
			}
		}
	}

	linked := 0
	for _, a := range anchors {
		it, ok := lookupArm(a, byMal, byAnilist)
		if !ok {
			a.Shoboi = nil
			a.Annict = nil
			continue
		}
		linked++
		a.Shoboi = it.SyobocalTID
		a.Annict = it.AnnictID
		// arm also backfills whichever of the two primary IDs the
		// anchor is missing.
		if a.AniList == nil {
			a.AniList = it.AnilistID
		}
		if a.MyAnimeList == nil && it.MalID != nil {
			a.MyAnimeList = it.MalID
			a.MirrorShikimori()
		}
	}
	log.Info("Source combined",
		zap.String("source", "arm"),
		zap.Int("records", len(items)),
		zap.Int("linked", linked),
	)
}

func lookupArm(a *models.Anime, byMal, byAnilist map[int]sources.ArmItem) (sources.ArmItem, bool) {
	if a.MyAnimeList != nil {
		if it, ok := byMal[*a.MyAnimeList]; ok {
			return it, true
		}
	}
	if a.AniList != nil {
		if it, ok := byAnilist[*a.AniList]; ok {
			return it, true
		}
	}
	return sources.ArmItem{}, false
}

// CombineAniTrakt merges aniTrakt-IndexParser relations on MAL ID. The three
// Trakt fields move together: all set on a hit, all null on a miss, except
// the season which stays null for movies.
func CombineAniTrakt(anchors []*models.Anime, items []sources.AniTraktItem, log *zap.Logger) {
	byMal := make(map[int]sources.AniTraktItem, len(items))
	for _, it := range items {
		if it.MalID == nil || it.TraktID == nil {
			continue
		}
		if _, taken := byMal[*it.MalID]; !taken {
			byMal[*it.MalID] = it
		}
	}

	linked := 0
	for _, a := range anchors {
		if a.MyAnimeList == nil {
			continue
		}
		it, ok := byMal[*a.MyAnimeList]
		if !ok {
			a.Trakt = nil
			a.TraktType = nil
			a.TraktSeason = nil
			continue
		}
		linked++
		a.Trakt = it.TraktID
		a.TraktType = models.Str(it.Type)
		a.TraktSeason = it.Season
	}
	log.Info("Source combined",
		zap.String("source", "anitrakt"),
		zap.Int("records", len(items)),
		zap.Int("linked", linked),
	)
}

// CombineFribb merges Fribb's Animelists relations on aniDB ID, picking up
// IMDb and TMDB movie IDs. The upstream TMDB column is loosely typed: a
// number, or a comma-joined string of several movie IDs, of which only the
// first is kept.
func CombineFribb(anchors []*models.Anime, items []sources.FribbItem, log *zap.Logger) {
	byAnidb := make(map[int]sources.FribbItem, len(items))
	for _, it := range items {
		if it.AnidbID == nil {
			continue
		}
		if _, taken := byAnidb[*it.AnidbID]; !taken {
			byAnidb[*it.AnidbID] = it
		}
	}

	linked := 0
	for _, a := range anchors {
		if a.AniDB == nil {
			continue
		}
		it, ok := byAnidb[*a.AniDB]
		if !ok {
			continue
		}
		linked++
		a.IMDB = it.ImdbID
		a.TheMovieDB = tmdbID(it.TheMovieDB)
	}
	log.Info("Source combined",
		zap.String("source", "fribb"),
		zap.Int("records", len(items)),
		zap.Int("linked", linked),
	)
}

// tmdbID coerces the loosely typed TMDB column to a single movie ID, or nil
// when it cannot.
func tmdbID(v any) *int {
	switch t := v.(type) {
	case float64:
		return models.Int(int(t))
	case string:
		first, _, _ := strings.Cut(t, ",")
		id, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil
		}
		return models.Int(id)
	default:
		return nil
	}
}
