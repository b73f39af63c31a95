package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"animeapi/core/fetch"
	"animeapi/core/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var otakotakuViewRe = regexp.MustCompile(`/anime/view/(\d+)`)

// OtakOtaku reads the otakotaku.com anime view API, which exposes several
// foreign IDs (MAL, Anime-Planet, aniDB, ANN) alongside its own.
type OtakOtaku struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	dl      *fetch.Downloader
	log     *zap.Logger
}

// NewOtakOtaku creates an Otak Otaku client rate-limited to rps requests
// per second.
func NewOtakOtaku(dl *fetch.Downloader, rps float64, log *zap.Logger) *OtakOtaku {
	return &OtakOtaku{
		base:    "https://otakotaku.com",
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		dl:      dl,
		log:     log,
	}
}

// GetAnime walks the view API from ID 1 up to the newest entry. A failed
// walk falls back to the cached copy of a previous run.
func (o *OtakOtaku) GetAnime(ctx context.Context) ([]OtakOtakuAnime, error) {
	data, err := o.scrape(ctx)
	if err != nil {
		o.log.Warn("Otak Otaku fetch failed, loading cached copy", zap.Error(err))
		var cached []OtakOtakuAnime
		if cerr := o.dl.Cached("otakotaku", &cached); cerr != nil {
			return nil, fmt.Errorf("otakotaku: %w", cerr)
		}
		return cached, nil
	}
	if err := o.dl.SaveRaw("otakotaku", data); err != nil {
		o.log.Warn("Failed to cache otakotaku index", zap.Error(err))
	}
	o.log.Info("Otak Otaku retrieved", zap.Int("entries", len(data)))
	return data, nil
}

func (o *OtakOtaku) scrape(ctx context.Context) ([]OtakOtakuAnime, error) {
	latest, err := o.latestID(ctx)
	if err != nil {
		return nil, err
	}
	var all []OtakOtakuAnime
	for id := 1; id <= latest; id++ {
		entry, err := o.view(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("view %d: %w", id, err)
		}
		if entry != nil {
			all = append(all, *entry)
		}
	}
	return all, nil
}

// latestID finds the newest anime ID from the public feed page.
func (o *OtakOtaku) latestID(ctx context.Context) (int, error) {
	body, err := o.get(ctx, o.base+"/anime/feed")
	if err != nil {
		return 0, err
	}
	latest := 0
	for _, m := range otakotakuViewRe.FindAllStringSubmatch(string(body), -1) {
		if id, err := strconv.Atoi(m[1]); err == nil && id > latest {
			latest = id
		}
	}
	if latest == 0 {
		return 0, fmt.Errorf("no anime IDs found in feed")
	}
	return latest, nil
}

func (o *OtakOtaku) view(ctx context.Context, id int) (*OtakOtakuAnime, error) {
	body, err := o.get(ctx, fmt.Sprintf("%s/api/anime/view/%d", o.base, id))
	if err != nil {
		return nil, err
	}
	var payload struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		// Deleted or unassigned ID; not an error.
		return nil, nil
	}
	return &OtakOtakuAnime{
		OtakOtaku:        utils.ToInt(payload.Data["id_anime"]),
		Title:            utils.ToString(payload.Data["judul_anime"]),
		MyAnimeList:      utils.ToIntPtr(payload.Data["mal_id_anime"]),
		AnimePlanet:      utils.ToIntPtr(payload.Data["ap_id_anime"]),
		AniDB:            utils.ToIntPtr(payload.Data["anidb_id_anime"]),
		AnimeNewsNetwork: utils.ToIntPtr(payload.Data["ann_id_anime"]),
	}, nil
}

func (o *OtakOtaku) get(ctx context.Context, url string) ([]byte, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
