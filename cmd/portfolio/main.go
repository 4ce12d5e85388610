package main

import (
	"context"
	"log"
	"os"
	"portfolio/internal"
	"portfolio/internal/cache"
	"portfolio/internal/http"
	"portfolio/internal/postgres"
	"portfolio/internal/revalidate"
	"portfolio/internal/stats"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/compute/metadata"
	"github.com/kelseyhightower/envconfig"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
)

var version string

type variables struct {
	Addr             string `required:"true" envconfig:"addr"`
	PostgresHost     string `required:"true" envconfig:"postgres_host"`
	PostgresPort     int    `required:"false" envconfig:"postgres_port"`
	PostgresDB       string `required:"true" envconfig:"postgres_db"`
	PostgresUser     string `required:"true" envconfig:"postgres_user"`
	PostgresPass     string `required:"true" envconfig:"postgres_pass"`
	LogLevel         string `required:"false" envconfig:"log_level"`
	AppName          string `required:"true" envconfig:"app_name"`
	RevalidateSecret string `required:"true" envconfig:"revalidate_secret"`
	RevalidateURL    string `required:"false" envconfig:"revalidate_url"`
	RevalidateToken  string `required:"false" envconfig:"revalidate_token"`
	RevalidatePaths  string `required:"false" envconfig:"revalidate_paths" default:"/,/portfolio"`
	ListenChanges    bool   `required:"false" envconfig:"listen_changes" default:"true"`
	ServeStale       bool   `required:"false" envconfig:"serve_stale" default:"false"`
}

var v variables

func init() {
	if metadata.OnGCE() {
		port := os.Getenv("PORT")
		err := os.Setenv("ADDR", ":"+port)
		if err != nil {
			log.Fatal(err)
		}
	}

	envconfig.MustProcess("portfolio", &v)
	if v.LogLevel == "" {
		v.LogLevel = "info"
	}
}

func main() {
	logger := zap.New("portfolio", version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}

	sc, err := stats.New("portfolio", stats.DefaultMetrics...)
	if err != nil {
		panic(err)
	}

	pgConfig := newPostgresConfig(v)
	pg, err := postgres.New(pgConfig, sc)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	cacheOps := []cache.Option{
		cache.WithClock(&clock.Default{}),
		cache.WithStats(sc),
	}
	if v.ServeStale {
		cacheOps = append(cacheOps, cache.WithStaleOnError())
	}
	catalogCache := cache.New(pg, logger, cacheOps...)

	ctx := context.Background()

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("portfolio root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	h := http.Handler{
		Logger:           logger,
		Stats:            sc,
		Clock:            &clock.Default{},
		Version:          version,
		AppName:          v.AppName,
		AlbumStore:       pg,
		Cache:            catalogCache,
		Revalidator:      newRevalidator(v, logger),
		RevalidateSecret: v.RevalidateSecret,
		RevalidatePaths:  splitPaths(v.RevalidatePaths),
	}

	if v.ListenChanges {
		startChangeListener(ctx, lc, pgConfig, &h, logger)
	}

	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}

func newPostgresConfig(v variables) postgres.Config {
	pgConfig := postgres.Config{
		Host:       v.PostgresHost,
		Name:       v.PostgresDB,
		Password:   v.PostgresPass,
		Username:   v.PostgresUser,
		DisableSSL: true,
	}
	// Only use a Postgres port if one was provided
	if v.PostgresPort > 0 {
		pgConfig.Port = v.PostgresPort
	}
	return pgConfig
}

func newRevalidator(v variables, logger tools.Logger) internal.PathRevalidator {
	if v.RevalidateURL == "" {
		logger.Info("no revalidate url configured, skipping downstream revalidation")
		return revalidate.Nop{}
	}
	return revalidate.New(v.RevalidateURL, v.RevalidateToken, logger)
}

// startChangeListener invalidates the catalog whenever the database reports
// a write to the catalog tables.
func startChangeListener(ctx context.Context, lc *lifecycle.LifeCycle, c postgres.Config, h *http.Handler, logger tools.Logger) {
	l, err := postgres.ListenChanges(c)
	if err != nil {
		logger.Error("failed to listen for catalog changes, relying on the revalidate endpoint",
			"details", err.Error(),
		)
		return
	}
	lc.Start("catalog change listener", func() error {
		defer l.Close()
		return postgres.WatchChanges(ctx, l.Messages(), logger, func(ctx context.Context, table string) {
			if err := h.InvalidateCatalog(ctx, http.TriggerNotify); err != nil {
				logger.Error("failed to revalidate catalog after change",
					"table", table,
					"details", err.Error(),
				)
			}
		})
	})
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
