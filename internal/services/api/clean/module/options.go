package module

import (
	"judolguard/internal/platform/config"
	"judolguard/internal/services/api/clean/service"
)

// FromConfig reads the request limits from CORE_API_*
func FromConfig(cfg config.Conf) service.Config {
	cf := cfg.Prefix("CORE_API_")
	return service.Config{
		MaxBatch: cf.MayInt("MAX_BATCH", 500),
		Workers:  cf.MayInt("WORKERS", 4),
	}
}
