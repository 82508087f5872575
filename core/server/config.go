package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// AllowOrigins is a comma-separated list of CORS origins allowed to call the API.
	AllowOrigins string `mapstructure:"allow_origins" default:"http://localhost:3000,http://localhost:3001"`
}
