package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"animeapi/core/fetch"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	nautiljonHTMLRe  = regexp.MustCompile(`\.html$`)
	nautiljonImageRe = regexp.MustCompile(`_(\d+)\.webp`)
)

const nautiljonPageSize = 100

// Nautiljon scrapes the nautiljon.com anime index tables.
type Nautiljon struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	dl      *fetch.Downloader
	log     *zap.Logger
}

// NewNautiljon creates a Nautiljon scraper rate-limited to rps requests per
// second.
func NewNautiljon(dl *fetch.Downloader, rps float64, log *zap.Logger) *Nautiljon {
	return &Nautiljon{
		base:    "https://www.nautiljon.com",
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		dl:      dl,
		log:     log,
	}
}

// GetAnimes scrapes the full index, falling back to the cached copy of a
// previous run when the site is unreachable. Results are title-sorted.
func (n *Nautiljon) GetAnimes(ctx context.Context) ([]NautiljonAnime, error) {
	data, err := n.scrape(ctx)
	if err != nil {
		n.log.Warn("Nautiljon scrape failed, loading cached copy", zap.Error(err))
		var cached []NautiljonAnime
		if cerr := n.dl.Cached("nautiljon", &cached); cerr != nil {
			return nil, fmt.Errorf("nautiljon: %w", cerr)
		}
		return cached, nil
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Title < data[j].Title })
	if err := n.dl.SaveRaw("nautiljon", data); err != nil {
		n.log.Warn("Failed to cache nautiljon index", zap.Error(err))
	}
	n.log.Info("Nautiljon retrieved", zap.Int("entries", len(data)))
	return data, nil
}

func (n *Nautiljon) scrape(ctx context.Context) ([]NautiljonAnime, error) {
	var all []NautiljonAnime
	for offset := 0; ; offset += nautiljonPageSize {
		doc, err := n.document(ctx, fmt.Sprintf("%s/animes/?dbt=%d", n.base, offset))
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", offset, err)
		}
		entries := ParseNautiljonIndex(doc)
		if len(entries) == 0 {
			break
		}
		all = append(all, entries...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("empty index")
	}
	return all, nil
}

// ParseNautiljonIndex extracts entries from one index table page.
func ParseNautiljonIndex(doc *goquery.Document) []NautiljonAnime {
	var result []NautiljonAnime
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}

		title := strings.TrimSpace(cols.Eq(1).Find("a").First().Text())
		href, _ := cols.Eq(0).Find("a").First().Attr("href")
		if title == "" || href == "" {
			return
		}
		parts := strings.Split(href, "/")
		entrySlug := nautiljonHTMLRe.ReplaceAllString(parts[len(parts)-1], "")

		// The numeric entry ID only appears in the thumbnail file name.
		var entryID *int
		if src, ok := cols.Eq(0).Find("img").First().Attr("src"); ok {
			if m := nautiljonImageRe.FindStringSubmatch(src); m != nil {
				if id, err := strconv.Atoi(m[1]); err == nil {
					entryID = &id
				}
			}
		}

		result = append(result, NautiljonAnime{
			Title:   title,
			Slug:    entrySlug,
			EntryID: entryID,
		})
	})
	return result
}

func (n *Nautiljon) document(ctx context.Context, url string) (*goquery.Document, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
