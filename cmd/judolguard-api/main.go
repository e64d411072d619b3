// @title         judolguard API
// @version       0.1.0
// @description   Clean and analyze Indonesian YouTube comments for judol spam

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"judolguard/internal/core/version"
	"judolguard/internal/modkit/repokit"
	"judolguard/internal/platform/config"
	"judolguard/internal/platform/logger"
	phttp "judolguard/internal/platform/net/http"
	"judolguard/internal/platform/store"

	"judolguard/internal/services/api"
)

func main() {
	version.SetService("judolguard-api")

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the cleaner needs no store, run history and reports switch on with their DBURL
	st, err := store.Open(ctx, store.Config{
		AppName: "judolguard-api",
		PG:      store.PGFrom(root.Prefix("SERVICE_PGSQL_")),
		CH:      store.CHFrom(root.Prefix("SERVICE_CLICKHOUSE_")),
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API, modules read their own prefixes from the root config
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
