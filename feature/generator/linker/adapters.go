package linker

import (
	"strconv"

	"animeapi/feature/generator/models"
	"animeapi/feature/generator/sources"

	"github.com/gosimple/slug"
)

// KaizeAdapter reconciles scraped Kaize entries. Kaize identifies anime by
// slug, so the exact stage joins the slugified anchor title against the
// entry slug, and the slug stage retries with the hyphen-stripped form.
type KaizeAdapter struct {
	Records []sources.KaizeAnime
	Manual  map[string]sources.KaizeOverride
}

func NewKaizeAdapter(records []sources.KaizeAnime, manual map[string]sources.KaizeOverride) *KaizeAdapter {
	return &KaizeAdapter{Records: records, Manual: manual}
}

func (k *KaizeAdapter) Name() string       { return "kaize" }
func (k *KaizeAdapter) Len() int           { return len(k.Records) }
func (k *KaizeAdapter) Title(i int) string { return k.Records[i].Title }

func (k *KaizeAdapter) AnchorKey(a *models.Anime) (string, bool) {
	if a.Kaize != nil {
		return "", false
	}
	return slug.Make(a.Title), true
}

func (k *KaizeAdapter) RecordKey(i int) (string, bool) {
	return k.Records[i].Slug, true
}

func (k *KaizeAdapter) AnchorSlug(a *models.Anime) string {
	if a.Kaize != nil {
		return ""
	}
	return NormalizeSlug(a.Title)
}

func (k *KaizeAdapter) RecordSlug(i int) string {
	return NormalizeSlug(k.Records[i].Slug)
}

func (k *KaizeAdapter) Link(i int, a *models.Anime) map[string]any {
	r := k.Records[i]
	a.Kaize = models.Str(r.Slug)
	if r.Kaize != 0 {
		a.KaizeID = models.Int(r.Kaize)
	}
	return map[string]any{
		"title":       r.Title,
		"kaize":       r.Slug,
		"kaize_id":    a.KaizeID,
		"anidb":       a.AniDB,
		"anilist":     a.AniList,
		"kitsu":       a.Kitsu,
		"myanimelist": a.MyAnimeList,
	}
}

func (k *KaizeAdapter) Residue(i int) map[string]any {
	r := k.Records[i]
	return map[string]any{
		"rank":  r.Rank,
		"title": r.Title,
		"slug":  r.Slug,
		"kaize": r.Kaize,
	}
}

func (k *KaizeAdapter) Overrides() []Override {
	out := make([]Override, 0, len(k.Manual))
	for title, ov := range k.Manual {
		ov := ov
		out = append(out, Override{
			Title: title,
			Matches: func(i int) bool {
				return k.Records[i].Slug == ov.Kaize
			},
			Apply: func(a *models.Anime) {
				a.Kaize = models.Str(ov.Kaize)
				a.KaizeID = ov.KaizeID
			},
		})
	}
	return out
}

// NautiljonAdapter reconciles scraped Nautiljon entries. Nautiljon lists
// titles in their romanized form, so the exact stage joins on the title
// itself and the slug stage falls back to normalized slugs.
type NautiljonAdapter struct {
	Records []sources.NautiljonAnime
	Manual  map[string]sources.NautiljonOverride
}

func NewNautiljonAdapter(records []sources.NautiljonAnime, manual map[string]sources.NautiljonOverride) *NautiljonAdapter {
	return &NautiljonAdapter{Records: records, Manual: manual}
}

func (na *NautiljonAdapter) Name() string       { return "nautiljon" }
func (na *NautiljonAdapter) Len() int           { return len(na.Records) }
func (na *NautiljonAdapter) Title(i int) string { return na.Records[i].Title }

func (na *NautiljonAdapter) AnchorKey(a *models.Anime) (string, bool) {
	if a.Nautiljon != nil {
		return "", false
	}
	return a.Title, true
}

func (na *NautiljonAdapter) RecordKey(i int) (string, bool) {
	return na.Records[i].Title, true
}

func (na *NautiljonAdapter) AnchorSlug(a *models.Anime) string {
	if a.Nautiljon != nil {
		return ""
	}
	return NormalizeSlug(a.Title)
}

func (na *NautiljonAdapter) RecordSlug(i int) string {
	return NormalizeSlug(na.Records[i].Slug)
}

func (na *NautiljonAdapter) Link(i int, a *models.Anime) map[string]any {
	r := na.Records[i]
	a.Nautiljon = models.Str(r.Slug)
	a.NautiljonID = r.EntryID
	return map[string]any{
		"title":        r.Title,
		"nautiljon":    r.Slug,
		"nautiljon_id": r.EntryID,
		"anidb":        a.AniDB,
		"anilist":      a.AniList,
		"myanimelist":  a.MyAnimeList,
	}
}

func (na *NautiljonAdapter) Residue(i int) map[string]any {
	r := na.Records[i]
	return map[string]any{
		"title":     r.Title,
		"slug":      r.Slug,
		"nautiljon": r.EntryID,
	}
}

func (na *NautiljonAdapter) Overrides() []Override {
	out := make([]Override, 0, len(na.Manual))
	for title, ov := range na.Manual {
		ov := ov
		out = append(out, Override{
			Title: title,
			Matches: func(i int) bool {
				return na.Records[i].Slug == ov.Nautiljon
			},
			Apply: func(a *models.Anime) {
				a.Nautiljon = models.Str(ov.Nautiljon)
				a.NautiljonID = ov.NautiljonID
			},
		})
	}
	return out
}

// OtakOtakuAdapter reconciles Otak Otaku API entries. The upstream API
// exposes MAL IDs for most entries, which make a far stronger join key than
// the Indonesian-localized titles; title matching is the fallback.
type OtakOtakuAdapter struct {
	Records []sources.OtakOtakuAnime
	Manual  map[string]int
}

func NewOtakOtakuAdapter(records []sources.OtakOtakuAnime, manual map[string]int) *OtakOtakuAdapter {
	return &OtakOtakuAdapter{Records: records, Manual: manual}
}

func (o *OtakOtakuAdapter) Name() string       { return "otakotaku" }
func (o *OtakOtakuAdapter) Len() int           { return len(o.Records) }
func (o *OtakOtakuAdapter) Title(i int) string { return o.Records[i].Title }

func (o *OtakOtakuAdapter) AnchorKey(a *models.Anime) (string, bool) {
	if a.OtakOtaku != nil {
		return "", false
	}
	return malOrTitleKey(a.MyAnimeList, a.Title), true
}

func (o *OtakOtakuAdapter) RecordKey(i int) (string, bool) {
	r := o.Records[i]
	return malOrTitleKey(r.MyAnimeList, r.Title), true
}

func (o *OtakOtakuAdapter) Link(i int, a *models.Anime) map[string]any {
	r := o.Records[i]
	a.OtakOtaku = models.Int(r.OtakOtaku)
	return map[string]any{
		"title":       r.Title,
		"otakotaku":   r.OtakOtaku,
		"anidb":       a.AniDB,
		"myanimelist": a.MyAnimeList,
	}
}

func (o *OtakOtakuAdapter) Residue(i int) map[string]any {
	r := o.Records[i]
	return map[string]any{
		"title":       r.Title,
		"otakotaku":   r.OtakOtaku,
		"myanimelist": r.MyAnimeList,
	}
}

func (o *OtakOtakuAdapter) Overrides() []Override {
	out := make([]Override, 0, len(o.Manual))
	for title, id := range o.Manual {
		id := id
		out = append(out, Override{
			Title: title,
			Matches: func(i int) bool {
				return o.Records[i].OtakOtaku == id
			},
			Apply: func(a *models.Anime) {
				a.OtakOtaku = models.Int(id)
			},
		})
	}
	return out
}

// SilverYashaAdapter reconciles Silver Yasha DBTI entries, joining on MAL
// ID when the entry carries one and on the title otherwise.
type SilverYashaAdapter struct {
	Records []sources.SilverYashaAnime
	Manual  map[string]int
}

func NewSilverYashaAdapter(records []sources.SilverYashaAnime, manual map[string]int) *SilverYashaAdapter {
	return &SilverYashaAdapter{Records: records, Manual: manual}
}

func (s *SilverYashaAdapter) Name() string       { return "silveryasha" }
func (s *SilverYashaAdapter) Len() int           { return len(s.Records) }
func (s *SilverYashaAdapter) Title(i int) string { return s.Records[i].Title }

func (s *SilverYashaAdapter) AnchorKey(a *models.Anime) (string, bool) {
	if a.SilverYasha != nil {
		return "", false
	}
	return malOrTitleKey(a.MyAnimeList, a.Title), true
}

func (s *SilverYashaAdapter) RecordKey(i int) (string, bool) {
	r := s.Records[i]
	return malOrTitleKey(r.MyAnimeList, r.Title), true
}

func (s *SilverYashaAdapter) Link(i int, a *models.Anime) map[string]any {
	r := s.Records[i]
	a.SilverYasha = models.Int(r.SilverYasha)
	return map[string]any{
		"title":       r.Title,
		"silveryasha": r.SilverYasha,
		"anidb":       a.AniDB,
		"myanimelist": a.MyAnimeList,
	}
}

func (s *SilverYashaAdapter) Residue(i int) map[string]any {
	r := s.Records[i]
	return map[string]any{
		"title":       r.Title,
		"silveryasha": r.SilverYasha,
		"myanimelist": r.MyAnimeList,
	}
}

func (s *SilverYashaAdapter) Overrides() []Override {
	out := make([]Override, 0, len(s.Manual))
	for title, id := range s.Manual {
		id := id
		out = append(out, Override{
			Title: title,
			Matches: func(i int) bool {
				return s.Records[i].SilverYasha == id
			},
			Apply: func(a *models.Anime) {
				a.SilverYasha = models.Int(id)
			},
		})
	}
	return out
}

// malOrTitleKey prefers the MAL ID as a join key, prefixed so numeric keys
// can never collide with real titles.
func malOrTitleKey(mal *int, title string) string {
	if mal != nil {
		return "mal:" + strconv.Itoa(*mal)
	}
	return "t:" + title
}
