package taskhttp

import "github.com/dmitrymomot/taskkit/pkg/config"

// Config holds the HTTP surface settings, populated from the environment.
type Config struct {
	Addr        string `env:"TASKHTTP_ADDR" envDefault:":8080"`
	BasePath    string `env:"TASKHTTP_BASE_PATH" envDefault:"/api/v1"`
	LogRequests bool   `env:"TASKHTTP_LOG_REQUESTS" envDefault:"true"`
}

// LoadConfig populates Config from the environment through the shared
// config loader, which also reads a .env file when one is present.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
