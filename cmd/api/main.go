package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"avail_quote/internal/adapters/fx"
	server "avail_quote/internal/adapters/http_server"
	"avail_quote/internal/adapters/observability"
	redisad "avail_quote/internal/adapters/redis"
	"avail_quote/internal/app"
	"avail_quote/internal/domain"
	"avail_quote/internal/refdata"
	"avail_quote/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	table := refdata.Load()

	// rates: static table by default; live FX source + redis cache when configured
	var live domain.RateSource
	if cfg.FXBase != "" {
		client, err := fx.New(cfg.FXBase, cfg.FXKey, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize FX client")
		}
		live = client
		log.Info().Str("base", cfg.FXBase).Msg("live FX rates enabled")
	}
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("rate cache enabled")
	}
	rates := app.NewRateService(table, live, cache, cfg.CacheTTL)

	proc := app.NewProcessor(table, rates, app.NewIDGenerator(), nil)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: proc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
