package lookup

import (
	"fmt"

	"animeapi/feature/generator/models"
)

// simklSynonyms lists accepted aliases for Simkl, which is a redirect-only
// target: it has no column in the dataset and resolves through the aniDB ID
// via Simkl's own redirector.
var simklSynonyms = map[string]struct{}{
	"simkl":     {},
	"smk":       {},
	"simkl.com": {},
}

const simklRedirect = "https://api.simkl.com/redirect?to=Simkl&anidb=%d"

// targetURL builds the external service URL a record redirects to. ok is
// false when the record has no entry on the target service.
func targetURL(target string, a *models.Anime) (string, bool) {
	if _, isSimkl := simklSynonyms[target]; isSimkl {
		if a.AniDB == nil {
			return "", false
		}
		return fmt.Sprintf(simklRedirect, *a.AniDB), true
	}

	p, found := models.ByName(target)
	if !found {
		return "", false
	}
	if p.Name == "trakt" {
		if a.Trakt == nil || a.TraktType == nil {
			return "", false
		}
		if a.TraktSeason == nil {
			return fmt.Sprintf("%s%s/%d", p.URLPrefix, *a.TraktType, *a.Trakt), true
		}
		return fmt.Sprintf("%s%s/%d/seasons/%d", p.URLPrefix, *a.TraktType, *a.Trakt, *a.TraktSeason), true
	}
	id, ok := p.ID(a)
	if !ok {
		return "", false
	}
	return p.URLPrefix + id, true
}

// knownTarget reports whether the name is a valid redirect target: any
// served platform, or Simkl.
func knownTarget(name string) bool {
	if _, isSimkl := simklSynonyms[name]; isSimkl {
		return true
	}
	_, found := models.ByName(name)
	return found
}
