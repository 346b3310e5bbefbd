package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"3000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	// StaticDir is served at the root when set. Empty disables static files.
	StaticDir          string   `env:"HTTP_STATIC_DIR"`
	CorsAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}
