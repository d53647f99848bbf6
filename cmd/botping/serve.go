package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/botpinghq/botping/internal/auth"
	"github.com/botpinghq/botping/internal/bots"
	"github.com/botpinghq/botping/internal/config"
	"github.com/botpinghq/botping/internal/handlers"
	"github.com/botpinghq/botping/internal/liveness"
	"github.com/botpinghq/botping/internal/logger"
	"github.com/botpinghq/botping/internal/probe"
	"github.com/botpinghq/botping/internal/probe/telegram"
	"github.com/botpinghq/botping/internal/server"
	"github.com/botpinghq/botping/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideProbeEnv,
			provideTokenStore,
			provideAllowlist,
			provideRegistry,
			provideProbeClient,
			provideProber,
			liveness.NewService,
			provideServerHandler(handlers.NewPingHandler),
			provideServer,
		),
		fx.Invoke(
			startProbeClient,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideProbeEnv() (*config.ProbeEnv, error) {
	return config.LoadProbeEnv()
}

func provideTokenStore(log *slog.Logger, cfg config.Config) (*auth.Store, error) {
	store, err := auth.Load(cfg.Lists.TokensFile)
	if err != nil {
		return nil, err
	}
	log.Info("tokens loaded",
		slog.Int("count", store.Size()),
		slog.String("path", cfg.Lists.TokensFile),
	)
	return store, nil
}

func provideAllowlist(log *slog.Logger, cfg config.Config) (*bots.Allowlist, error) {
	allowlist, err := bots.Load(cfg.Lists.BotsFile)
	if err != nil {
		return nil, err
	}
	log.Info("allow-list loaded",
		slog.Int("count", allowlist.Size()),
		slog.String("path", cfg.Lists.BotsFile),
	)
	return allowlist, nil
}

func provideRegistry(cfg config.Config) *telegram.Registry {
	return telegram.NewRegistry(cfg.Probe.RegistryTTL())
}

func provideProbeClient(log *slog.Logger, cfg config.Config, env *config.ProbeEnv, registry *telegram.Registry) (*telegram.Client, error) {
	return telegram.NewClient(log, env.BotToken, env.APIEndpoint, cfg.Probe.ReplyWindow(), registry)
}

func provideProber(client *telegram.Client) probe.Prober { return client }

type serverParams struct {
	fx.In
	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.ServerHandlers...)
}

func startProbeClient(lc fx.Lifecycle, client *telegram.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error { go client.Run(ctx); return nil },
		OnStop:  func(_ context.Context) error { cancel(); return nil },
	})
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting botping %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
