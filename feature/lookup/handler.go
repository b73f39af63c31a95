package lookup

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"animeapi/core/logger"
	"animeapi/feature/generator/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the lookup routes.
type Handler struct {
	service *Service
	repoURL string
	logger  *zap.Logger
}

func NewHandler(service *Service, repoURL string, logger *zap.Logger) *Handler {
	return &Handler{service: service, repoURL: repoURL, logger: logger}
}

// RegisterRoutes mounts every route. The static and exclusive routes come
// first; the two catch-all platform routes must stay last so they never
// shadow them.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleIndex)
	app.Get("/status", h.HandleStatus)
	app.Get("/heartbeat", h.HandleHeartbeat)
	app.Get("/ping", h.HandleHeartbeat)
	app.Get("/schema", h.HandleSchema)
	app.Get("/schema.json", h.HandleSchema)
	app.Get("/updated", h.HandleUpdated)
	app.Get("/robots.txt", h.HandleRobots)
	app.Get("/rd", h.HandleRedirect)
	app.Get("/redirect", h.HandleRedirect)
	app.Get("/trakt/:mediatype/:mediaid", h.HandleTrakt)
	app.Get("/trakt/:mediatype/:mediaid/seasons/:season", h.HandleTrakt)
	app.Get("/trakt/:mediatype/:mediaid/season/:season", h.HandleTrakt)
	app.Get("/themoviedb/:mediatype/:mediaid", h.HandleTmdb)
	app.Get("/themoviedb/:mediatype/:mediaid/season/:season", h.HandleTmdb)
	app.Get("/:platform", h.HandlePlatformArray)
	app.Get("/:platform/:mediaid", h.HandlePlatformLookup)
}

func apiError(c *fiber.Ctx, code int, kind, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error":   kind,
		"code":    code,
		"message": message,
	})
}

// HandleIndex redirects to the project repository.
func (h *Handler) HandleIndex(c *fiber.Ctx) error {
	return c.Redirect(h.repoURL, fiber.StatusFound)
}

// HandleStatus serves the status.json document.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	raw, err := h.service.Status()
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Status artifact unreadable", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "Internal server error", "status.json is not available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// HandleHeartbeat self-checks the dataset via MyAnimeList ID 1.
func (h *Handler) HandleHeartbeat(c *fiber.Ctx) error {
	start := time.Now()
	if err := h.service.Heartbeat(); err != nil {
		logger.WithRayID(h.logger, c).Error("Heartbeat failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "Internal server error",
			"myanimelist_object.json is corrupted")
	}
	return c.JSON(fiber.Map{
		"status":        "OK",
		"code":          fiber.StatusOK,
		"response_time": fmt.Sprintf("%.3fs", time.Since(start).Seconds()),
	})
}

// HandleSchema serves the JSON schema of the record shape.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	raw, err := h.service.Schema()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal server error", "schema.json is not available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// HandleUpdated reports the last export time as plain text.
func (h *Handler) HandleUpdated(c *fiber.Ctx) error {
	ts, err := h.service.UpdatedAt()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal server error", "status.json is not available")
	}
	stamp := time.Unix(ts, 0).UTC().Format("01/02/2006 15:04:05 UTC")
	return c.SendString("Updated on " + stamp)
}

// HandleRobots serves robots.txt.
func (h *Handler) HandleRobots(c *fiber.Ctx) error {
	raw, err := h.service.Robots()
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "Not found", "robots.txt is not available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(raw)
}

// HandleTrakt answers the composite trakt route. Season zero is rejected,
// the media type is normalized to its plural form, and season one records
// stay reachable without the season suffix.
func (h *Handler) HandleTrakt(c *fiber.Ctx) error {
	mediaType := strings.ToLower(c.Params("mediatype"))
	mediaID := c.Params("mediaid")
	season := c.Params("season")

	if season == "0" && (mediaType == "show" || mediaType == "shows") {
		return apiError(c, fiber.StatusBadRequest, "Invalid season ID", "Season ID cannot be 0")
	}
	if !strings.HasSuffix(mediaType, "s") {
		mediaType += "s"
	}
	key := mediaType + "/" + mediaID
	if season != "" {
		key += "/seasons/" + season
	}

	a, ok := h.service.Record("trakt", key)
	if !ok {
		msg := fmt.Sprintf("Media type %s with ID %s not found", c.Params("mediatype"), mediaID)
		if season != "" {
			msg = fmt.Sprintf("Media type %s with ID %s and season ID %s not found", c.Params("mediatype"), mediaID, season)
		}
		return apiError(c, fiber.StatusNotFound, "Not found", msg)
	}
	return c.JSON(a)
}

// HandleTmdb answers the TMDB route. Only movies exist in the dataset.
func (h *Handler) HandleTmdb(c *fiber.Ctx) error {
	mediaType := strings.ToLower(c.Params("mediatype"))
	mediaID := c.Params("mediaid")

	if mediaType == "tv" || c.Params("season") != "" {
		return apiError(c, fiber.StatusBadRequest, "Invalid request", "Currently, only `movie` are supported")
	}
	a, ok := h.service.Record("themoviedb", "movie/"+mediaID)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("Media type %s with ID %s not found", mediaType, mediaID))
	}
	return c.JSON(a)
}

// HandlePlatformArray serves a platform's artifact file. The object map is
// the default projection; a "()" suffix selects the plain array, matching
// the shape the per-ID lookups use.
func (h *Handler) HandlePlatformArray(c *fiber.Ctx) error {
	name := strings.ToLower(c.Params("platform"))
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	if strings.HasSuffix(name, ".tsv") {
		c.Set(fiber.HeaderContentType, "text/tab-separated-values")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="animeapi.tsv"`)
		return c.SendFile(h.service.TSVPath())
	}

	name = strings.TrimSuffix(name, ".json")
	object := true
	if strings.HasSuffix(name, "()") {
		name = strings.TrimSuffix(name, "()")
		object = false
	}
	if name == "animeapi" {
		object = false
	}

	path, ok := h.service.ArrayPath(name, object)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("Platform %s not found", name))
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendFile(path)
}

// HandlePlatformLookup answers a single-record lookup. Stray .json/.html
// suffixes and URL escapes on the ID are tolerated.
func (h *Handler) HandlePlatformLookup(c *fiber.Ctx) error {
	name := strings.ToLower(c.Params("platform"))
	id := c.Params("mediaid")
	id = strings.TrimSuffix(id, ".json")
	id = strings.TrimSuffix(id, ".html")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	canonical, known := h.service.KnownPlatform(name)
	if !known {
		return apiError(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("Platform %s not found", name))
	}
	a, ok := h.service.Record(canonical, id)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("Platform %s with ID %s not found", canonical, id))
	}
	return c.JSON(a)
}

// HandleRedirect builds a redirect to an external service from a known
// record. platform/from and mediaid/id select the record, target/to picks
// the destination service, raw/r returns the URL as text instead of a 302.
func (h *Handler) HandleRedirect(c *fiber.Ctx) error {
	platform := strings.ToLower(firstQuery(c, "platform", "from"))
	mediaID := firstQuery(c, "mediaid", "id")
	target := strings.ToLower(firstQuery(c, "target", "to"))
	raw := c.Context().QueryArgs().Has("raw") || c.Context().QueryArgs().Has("r")

	if platform == "" || !knownTarget(platform) {
		return apiError(c, fiber.StatusBadRequest, "Invalid platform",
			fmt.Sprintf("Platform not found, please specify platform by adding `platform` parameter, or check if `%s` is a valid platform", platform))
	}
	if mediaID == "" {
		return apiError(c, fiber.StatusBadRequest, "Invalid platform ID",
			"Platform ID not found, please specify platform ID by adding `mediaid` parameter")
	}
	if target != "" && !knownTarget(target) {
		return apiError(c, fiber.StatusBadRequest, "Invalid target",
			fmt.Sprintf("Target %s not found", target))
	}

	if target == "" {
		uri := platformPrefix(platform) + mediaID
		if raw {
			return c.SendString(uri)
		}
		return c.Redirect(uri, fiber.StatusFound)
	}

	a, ok := h.service.Record(platform, mediaID)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("%s not found on %s with ID %s", target, platform, mediaID))
	}
	if _, isSimkl := simklSynonyms[target]; isSimkl && a.AniDB == nil {
		return apiError(c, fiber.StatusNotFound, "Not found",
			"AniDB ID not found, which is the main database source for Simkl. Please issue missing show to SIMKL or create a creq on AniDB if the entry is not a special or OVA")
	}
	uri, ok := targetURL(target, a)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("%s does not exist on %s using %s with ID %s", a.Title, target, platform, mediaID))
	}
	if raw {
		return c.SendString(uri)
	}
	return c.Redirect(uri, fiber.StatusFound)
}

func firstQuery(c *fiber.Ctx, names ...string) string {
	for _, n := range names {
		if v := c.Query(n); v != "" {
			return v
		}
	}
	return ""
}

// platformPrefix returns the site URL a bare redirect appends the ID to.
func platformPrefix(name string) string {
	if _, isSimkl := simklSynonyms[name]; isSimkl {
		return "https://simkl.com/"
	}
	if p, ok := models.ByName(name); ok {
		return p.URLPrefix
	}
	return ""
}
