package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature is a self-contained unit of HTTP functionality: it owns its routes
// and whatever services back them.
type Feature interface {
	// Name identifies the feature in logs and errors.
	Name() string
	// Register mounts the feature's routes on the app.
	Register(app fiber.Router) error
}

// Manager collects features and loads them onto a Fiber app.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register queues a feature for loading.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll registers every queued feature's routes. The first failure aborts
// startup.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if err := f.Register(app); err != nil {
			return fmt.Errorf("load feature %s: %w", f.Name(), err)
		}
	}
	return nil
}
