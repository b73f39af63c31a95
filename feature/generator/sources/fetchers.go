package sources

import (
	"context"
	"fmt"

	"animeapi/core/fetch"
	"animeapi/core/utils"

	"go.uber.org/zap"
)

const (
	aodURL      = "https://raw.githubusercontent.com/manami-project/anime-offline-database/master/anime-offline-database-minified.json"
	armURL      = "https://raw.githubusercontent.com/kawaiioverflow/arm/master/arm.json"
	anitraktTV  = "https://raw.githubusercontent.com/ryuuganime/aniTrakt-IndexParser/main/db/tv.json"
	anitraktMov = "https://raw.githubusercontent.com/ryuuganime/aniTrakt-IndexParser/main/db/movies.json"
	fribbURL    = "https://raw.githubusercontent.com/Fribb/anime-lists/master/anime-lists-reduced.json"
	syURL       = "https://db.silveryasha.web.id/ajax/anime/dtanime"
)

// GetAOD fetches the anime-offline-database anchor dataset.
func GetAOD(ctx context.Context, dl *fetch.Downloader, log *zap.Logger) (*AOD, error) {
	var aod AOD
	if err := dl.JSON(ctx, aodURL, "aod", &aod); err != nil {
		return nil, fmt.Errorf("anime-offline-database: %w", err)
	}
	log.Info("anime-offline-database retrieved", zap.Int("entries", len(aod.Data)))
	return &aod, nil
}

// GetArm fetches the kawaiioverflow/arm relation table.
func GetArm(ctx context.Context, dl *fetch.Downloader, log *zap.Logger) ([]ArmItem, error) {
	var arm []ArmItem
	if err := dl.JSON(ctx, armURL, "arm", &arm); err != nil {
		return nil, fmt.Errorf("arm: %w", err)
	}
	log.Info("ARM retrieved", zap.Int("entries", len(arm)))
	return arm, nil
}

// GetAniTrakt fetches and merges the AniTrakt show and movie indexes.
// Movies get a null season so the merged list is uniformly shaped.
func GetAniTrakt(ctx context.Context, dl *fetch.Downloader, log *zap.Logger) ([]AniTraktItem, error) {
	var shows []AniTraktItem
	if err := dl.JSON(ctx, anitraktTV, "anitrakt_tv", &shows); err != nil {
		return nil, fmt.Errorf("anitrakt tv: %w", err)
	}
	var movies []AniTraktItem
	if err := dl.JSON(ctx, anitraktMov, "anitrakt_movie", &movies); err != nil {
		return nil, fmt.Errorf("anitrakt movies: %w", err)
	}
	for i := range movies {
		movies[i].Season = nil
	}
	merged := append(shows, movies...)
	if err := dl.SaveRaw("anitrakt", merged); err != nil {
		log.Warn("Failed to cache merged anitrakt index", zap.Error(err))
	}
	log.Info("AniTrakt retrieved", zap.Int("shows", len(shows)), zap.Int("movies", len(movies)))
	return merged, nil
}

// GetFribb fetches Fribb's Animelists (AniDB → IMDb/TMDB relations).
func GetFribb(ctx context.Context, dl *fetch.Downloader, log *zap.Logger) ([]FribbItem, error) {
	var fribb []FribbItem
	if err := dl.JSON(ctx, fribbURL, "fribb_animelists", &fribb); err != nil {
		return nil, fmt.Errorf("fribb animelists: %w", err)
	}
	log.Info("Fribb's Animelists retrieved", zap.Int("entries", len(fribb)))
	return fribb, nil
}

// GetSilverYasha fetches the Silver Yasha DBTI index and simplifies it to
// the fields the linker consumes.
func GetSilverYasha(ctx context.Context, dl *fetch.Downloader, log *zap.Logger) ([]SilverYashaAnime, error) {
	var raw struct {
		Data []map[string]any `json:"data"`
	}
	if err := dl.JSON(ctx, syURL, "silveryasha", &raw); err != nil {
		return nil, fmt.Errorf("silveryasha: %w", err)
	}
	final := make([]SilverYashaAnime, 0, len(raw.Data))
	for _, item := range raw.Data {
		final = append(final, SilverYashaAnime{
			Title:       utils.ToString(item["title"]),
			AltTitles:   utils.ToStringPtr(item["title_alt"]),
			SilverYasha: utils.ToInt(item["id"]),
			MyAnimeList: utils.ToIntPtr(item["mal_id"]),
		})
	}
	log.Info("Silver Yasha retrieved", zap.Int("entries", len(final)))
	return final, nil
}
