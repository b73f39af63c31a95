package server

// Config holds configuration for the lookup HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// RepoURL is where the index route redirects to.
	RepoURL string `mapstructure:"repo_url" default:"https://github.com/nattadasu/animeApi"`
}
