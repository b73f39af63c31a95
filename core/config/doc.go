// Package config provides configuration management for AnimeAPI.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults are declared as struct tags and bound
// recursively, so each subsystem owns its own Config struct:
//   - Server: lookup HTTP server settings
//   - Storage: S3/MinIO credentials for artifact publishing
//   - Database: run-history database settings
//   - Log: logging level and format
//   - Generator: pipeline directories, rate limits and toggles
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
