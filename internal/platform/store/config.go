package store

import (
	"time"

	"judolguard/internal/platform/config"
	"judolguard/internal/platform/logger"
	"judolguard/internal/platform/store/pg"
)

// Config selects the backends Open connects. A backend with an empty URL stays off
type Config struct {
	AppName string
	PG      PGConfig
	CH      CHConfig
}

type PGConfig struct {
	URL            string
	MaxConns       int32
	LogSQL         bool
	Slow           time.Duration // traced statements at or above this log at warn
	ConnectTimeout time.Duration
}

type CHConfig struct {
	URL string
}

func (c Config) pgConfig(log logger.Logger) pg.Config {
	out := pg.Config{
		URL:            c.PG.URL,
		AppName:        c.AppName,
		MaxConns:       c.PG.MaxConns,
		ConnectTimeout: c.PG.ConnectTimeout,
	}
	if c.PG.LogSQL {
		out.Tracer = pg.NewTracer(log, c.PG.Slow)
	}
	return out
}

// PGFrom reads DBURL, MAX_CONNS, LOG_SQL, SLOW and CONNECT_TIMEOUT from c
func PGFrom(c config.Conf) PGConfig {
	return PGConfig{
		URL:            c.MayString("DBURL", ""),
		MaxConns:       int32(c.MayInt("MAX_CONNS", 4)),
		LogSQL:         c.MayBool("LOG_SQL", false),
		Slow:           c.MayDuration("SLOW", 500*time.Millisecond),
		ConnectTimeout: c.MayDuration("CONNECT_TIMEOUT", 30*time.Second),
	}
}

// CHFrom reads DBURL from c
func CHFrom(c config.Conf) CHConfig { return CHConfig{URL: c.MayString("DBURL", "")} }
