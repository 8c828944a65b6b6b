package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/homepage/app"
	"github.com/vango-dev/homepage/internal/config"
	"github.com/vango-dev/homepage/internal/dev"
	apperrors "github.com/vango-dev/homepage/internal/errors"
	"github.com/vango-dev/homepage/internal/logging"
	"github.com/vango-dev/homepage/pkg/assets"
	"github.com/vango-dev/homepage/pkg/middleware"
	"github.com/vango-dev/homepage/pkg/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Configuration is read from --config (default homepage.yaml). A missing
file means defaults. HOMEPAGE_ADDR, HOMEPAGE_LOG_LEVEL and HOMEPAGE_ENV
override the file; --addr overrides everything.

Examples:
  homepage serve
  homepage serve --addr=:3000
  HOMEPAGE_ENV=development homepage serve -c dev.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	slog.SetDefault(logger)
	return logger
}

// newServer wires the application, assets, metrics and tracing.
func newServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	routes := app.Routes()
	if err := routes.Validate(); err != nil {
		return nil, apperrors.New("E002").Wrap(err)
	}

	srv := server.New(cfg.ServerConfig(logger), app.App)

	store, err := cfg.AssetStore()
	if err != nil {
		return nil, apperrors.New("E003").WithDetail("assets").Wrap(err)
	}
	var assetOpts []assets.Option
	if cfg.Assets.MinifyCSS {
		assetOpts = append(assetOpts, assets.WithMinifyCSS())
	}
	if cfg.IsDev() {
		assetOpts = append(assetOpts, assets.WithCacheControl("no-store"))
	}
	srv.Mount(assets.Prefix+"*", assets.Handler(store, logger, assetOpts...))

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
		metrics.ObserveSessions(srv.Sessions())
		srv.Use(metrics.HTTP)
		srv.UseEvent(metrics.Events())
		srv.Mount(cfg.Metrics.Path, middleware.MetricsHandler(reg))
	}

	srv.Use(middleware.Tracing())
	srv.UseEvent(middleware.EventTracing())
	return srv, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cfg)

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Dev.WatchCSS {
		watcher, err := dev.NewCSSWatcher(dev.CSSWatcherConfig{
			File:   filepath.Join(cfg.Assets.Dir, path.Base(app.StylesheetHref)),
			Href:   app.StylesheetHref,
			Logger: logger,
		}, srv)
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("css watcher stopped", "error", err)
			}
		}()
	}

	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return apperrors.New("E005").WithDetail(cfg.Server.Address).Wrap(err)
	}
	logger.Info("homepage starting", "version", version, "env", cfg.Env, "config", cfg.Path())
	return srv.Serve(ctx, ln)
}
