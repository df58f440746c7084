package config

import "github.com/gofiber/fiber/v2/middleware/cors"

type LogCfg struct {
	// Requests to this path are not logged unless they fail
	HealthCheckPath *string
}

type LibConfig struct {
	Cors *cors.Config
	Log  *LogCfg
}

func DefaultLibConfig() *LibConfig {
	healthPath := "/healthz"
	return &LibConfig{
		Log: &LogCfg{
			HealthCheckPath: &healthPath,
		},
	}
}
