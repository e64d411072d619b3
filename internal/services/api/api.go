// Package api provides the HTTP API for the application
package api

import (
	"time"

	"judolguard/internal/core/version"
	"judolguard/internal/platform/config"
	"judolguard/internal/platform/logger"
	phttp "judolguard/internal/platform/net/http"
	"judolguard/internal/platform/net/middleware"
	"judolguard/internal/platform/store"

	"judolguard/internal/modkit"
	"judolguard/internal/modkit/httpkit"
	"judolguard/internal/modkit/module"
	"judolguard/internal/modkit/swaggerkit"

	cleanmod "judolguard/internal/services/api/clean/module"
	metamod "judolguard/internal/services/api/meta/module"
	runsmod "judolguard/internal/services/api/runs/module"

	// comments module owns the Cleaner built from CORE_CLEAN_*
	commentsmod "judolguard/internal/services/comments/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	apiCfg := opt.Config.Prefix("CORE_API_")

	// Construct the comments module first and extract its Cleaner
	comments := commentsmod.New(deps, commentsmod.Options{})
	cl := module.MustPortsOf[commentsmod.Ports](comments).Cleaner

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Cleaner: cl})),
		cleanmod.New(
			deps,
			modkit.WithPorts(cleanmod.Ports{Cleaner: cl}),
			// cleaning is CPU bound, cap in-flight requests
			modkit.WithMiddlewares(middleware.Throttle(apiCfg.MayInt("THROTTLE", 64))),
		),
		comments, // no routes, registered so its ports can be looked up
	}
	// run history lives in postgres
	if deps.PG != nil {
		mods = append(mods, runsmod.New(deps))
	}

	swaggerkit.Register(func(doc map[string]any) {
		if info, ok := doc["info"].(map[string]any); ok {
			info["version"] = version.Info().Version
		}
	})

	// versioned API with a common middleware stack
	stack := httpkit.CommonStackWith(httpkit.StackOptions{
		CORS:        middleware.CORSOptions{AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil)},
		Timeout:     apiCfg.MayDuration("TIMEOUT", 30*time.Second),
		Slow:        apiCfg.MayDuration("SLOW", 500*time.Millisecond),
		MaxInFlight: apiCfg.MayInt("MAX_INFLIGHT", 0),
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, "/api/v1", opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
