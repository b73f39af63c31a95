package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"animeapi/core/fetch"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var kaizeImageRe = regexp.MustCompile(`/anime_image_(\d+)`)

// Kaize scrapes the kaize.io top-anime index. Only the public listing pages
// are read; no authentication is required for the fields we keep.
type Kaize struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	dl      *fetch.Downloader
	log     *zap.Logger
}

// NewKaize creates a Kaize scraper rate-limited to rps requests per second.
func NewKaize(dl *fetch.Downloader, rps float64, log *zap.Logger) *Kaize {
	return &Kaize{
		base:    "https://kaize.io",
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		dl:      dl,
		log:     log,
	}
}

// GetAnime scrapes every index page. On any scrape failure the cached copy
// of a previous run is returned instead.
func (k *Kaize) GetAnime(ctx context.Context) ([]KaizeAnime, error) {
	data, err := k.scrape(ctx)
	if err != nil {
		k.log.Warn("Kaize scrape failed, loading cached copy", zap.Error(err))
		var cached []KaizeAnime
		if cerr := k.dl.Cached("kaize", &cached); cerr != nil {
			return nil, fmt.Errorf("kaize: %w", cerr)
		}
		return cached, nil
	}
	if err := k.dl.SaveRaw("kaize", data); err != nil {
		k.log.Warn("Failed to cache kaize index", zap.Error(err))
	}
	k.log.Info("Kaize retrieved", zap.Int("entries", len(data)))
	return data, nil
}

func (k *Kaize) scrape(ctx context.Context) ([]KaizeAnime, error) {
	pages, err := k.pageCount(ctx)
	if err != nil {
		return nil, err
	}
	var all []KaizeAnime
	for page := 1; page <= pages; page++ {
		entries, err := k.indexPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, entries...)
	}
	return all, nil
}

func (k *Kaize) pageCount(ctx context.Context) (int, error) {
	doc, err := k.document(ctx, k.base+"/anime/top")
	if err != nil {
		return 0, err
	}
	last := 1
	doc.Find(".pagination a").Each(func(_ int, s *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(s.Text())); err == nil && n > last {
			last = n
		}
	})
	return last, nil
}

func (k *Kaize) indexPage(ctx context.Context, page int) ([]KaizeAnime, error) {
	doc, err := k.document(ctx, fmt.Sprintf("%s/anime/top?page=%d", k.base, page))
	if err != nil {
		return nil, err
	}
	return ParseKaizeIndex(doc), nil
}

// ParseKaizeIndex extracts index entries from a top-anime listing page.
func ParseKaizeIndex(doc *goquery.Document) []KaizeAnime {
	var result []KaizeAnime
	doc.Find("div.anime-list-element").Each(func(_ int, el *goquery.Selection) {
		rankText := strings.TrimSpace(strings.ReplaceAll(el.Find("div.rank").Text(), "#", ""))
		rank, _ := strconv.Atoi(rankText)

		name := el.Find("a.name")
		title := strings.TrimSpace(name.Text())
		href, _ := name.Attr("href")
		parts := strings.Split(href, "/")
		elSlug := parts[len(parts)-1]
		if title == "" || elSlug == "" {
			return
		}

		// The numeric media ID only appears in the cover image URL.
		mediaID := 0
		if style, ok := el.Find("div.cover").Attr("style"); ok {
			if m := kaizeImageRe.FindStringSubmatch(style); m != nil {
				mediaID, _ = strconv.Atoi(m[1])
			}
		}

		result = append(result, KaizeAnime{
			Rank:  rank,
			Title: title,
			Slug:  elSlug,
			Kaize: mediaID,
		})
	})
	return result
}

func (k *Kaize) document(ctx context.Context, url string) (*goquery.Document, error) {
	if err := k.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
