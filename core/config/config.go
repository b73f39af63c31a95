package config

import (
	"reflect"
	"strings"

	"animeapi/core/database"
	"animeapi/core/logger"
	"animeapi/core/server"
	"animeapi/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Generator holds configuration for the dataset generator pipeline.
type Generator struct {
	// DataDir is where exported artifacts (animeapi.json, per-platform
	// files) are written.
	DataDir string `mapstructure:"data_dir" default:"database"`
	// RawDir is where raw source payloads and unlinked residue are kept.
	RawDir string `mapstructure:"raw_dir" default:"database/raw"`
	// APIDir is where status.json and schema.json live.
	APIDir string `mapstructure:"api_dir" default:"api"`
	// FuzzyWorkers bounds the goroutines used by the fuzzy match stage.
	FuzzyWorkers int `mapstructure:"fuzzy_workers" default:"4"`
	// ScrapeRPS is the per-scraper request rate limit.
	ScrapeRPS float64 `mapstructure:"scrape_rps" default:"2"`
	// ContributorsURL is the GitHub API endpoint listing repo contributors
	// for the status artifact. Empty disables the fetch.
	ContributorsURL string `mapstructure:"contributors_url" default:"https://api.github.com/repos/nattadasu/animeApi/contributors?per_page=100"`
	// Publish uploads artifacts to object storage after a successful run.
	Publish bool `mapstructure:"publish" default:"false"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the lookup HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for artifact publishing (S3/MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run-history database.
	Database database.Config `mapstructure:"database"`
	// Generator holds configuration for the batch pipeline.
	Generator Generator `mapstructure:"generator"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
