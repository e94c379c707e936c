// Command server exposes the inflexion library as a JSON REST API.
//
// Endpoints:
//
//	POST /api/render   body: {"template":"...","bindings":{"n":3}}
//	GET  /api/noun?word=<noun>
//	GET  /api/number?n=<int>[&form=cardinal|ordinal|roman|summary|commas]
//	GET  /api/article?phrase=<text>
//	GET  /api/stats
//	GET  /metrics
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/rs/cors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cours-de-latin/inflexion"
	"github.com/cours-de-latin/inflexion/internal/config"
	"github.com/cours-de-latin/inflexion/internal/logging"
	"github.com/cours-de-latin/inflexion/internal/metrics"
	"github.com/cours-de-latin/inflexion/internal/reload"
)

func newMux(envs environments, m *metrics.Metrics, log *zap.Logger, origins []string) http.Handler {
	mux := http.NewServeMux()
	route := func(path string, h http.Handler) {
		mux.Handle(path, m.Instrument(path, h))
	}
	route("/api/render", handleRender(envs, m, log))
	route("/api/noun", handleNoun(envs, log))
	route("/api/number", handleNumber(log))
	route("/api/article", handleArticle(log))
	route("/api/stats", handleStats(envs, log))
	mux.Handle("/metrics", m.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})
	return withRequestLog(log, c.Handler(mux))
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	build := func() (*inflexion.Environment, error) {
		opts := []inflexion.Option{inflexion.WithLogger(log)}
		for _, path := range cfg.Data.UserNouns {
			opts = append(opts, inflexion.WithUserNouns(path))
		}
		return inflexion.New(cfg.Data.Dir, opts...)
	}

	r, err := reload.New(reload.Config{
		DataDir:   cfg.Data.Dir,
		UserNouns: cfg.Data.UserNouns,
		Debounce:  cfg.Data.Debounce,
	}, build, log)
	if err != nil {
		return errors.Wrap(err, "load data")
	}

	m := metrics.New()
	m.ObserveStats(r.Current().Nouns().Stats())
	r.OnReload(func(env *inflexion.Environment, err error) {
		m.ObserveReload(err)
		m.ObserveStats(env.Nouns().Stats())
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: newMux(r, m, log, cfg.Server.AllowedOrigins),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	if cfg.Data.Watch {
		g.Go(func() error { return r.Run(ctx) })
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	fs := pflag.NewFlagSet("server", pflag.ExitOnError)
	config.DefineFlags(fs)
	config.DefineServerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %+v\n", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
