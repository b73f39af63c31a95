package lookup

import (
	"animeapi/core/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature bundles the lookup service and its routes for the loader.
type Feature struct {
	handler *Handler
}

// NewFeature builds the lookup feature, loading the exported object maps
// into memory.
func NewFeature(cfg *config.Config, logger *zap.Logger) (*Feature, error) {
	service, err := NewService(cfg.Generator.DataDir, cfg.Generator.APIDir, logger)
	if err != nil {
		return nil, err
	}
	return &Feature{
		handler: NewHandler(service, cfg.Server.RepoURL, logger),
	}, nil
}

func (f *Feature) Name() string {
	return "lookup"
}

func (f *Feature) Register(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
