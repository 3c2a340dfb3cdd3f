package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"

	"github.com/ryngard/xsurface/internal/app"
	"github.com/ryngard/xsurface/internal/build"
	"github.com/ryngard/xsurface/internal/bus"
	"github.com/ryngard/xsurface/internal/config"
)

type Options struct {
	Debug   bool   `doc:"enable debug"`
	Host    string `doc:"host to listen on when the config does not set one"`
	Port    int    `doc:"port to listen on when the config does not set one" default:"8080"`
	Config  string `doc:"config file" default:".xsurface.yaml"`
	Display string `doc:"X display to connect to, overrides the config"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			bus.SetContext(ctx)

			configFilePath, err := filepath.Abs(options.Config)
			if err != nil {
				return err
			}

			var driver config.Driver
			if strings.HasSuffix(configFilePath, ".json") {
				driver = config.NewJSON(configFilePath)
			} else {
				driver = config.NewYAML(configFilePath)
			}

			store, err := config.NewStore(driver)
			if err != nil {
				return err
			}

			if err := store.UpdateConfig(func(cfg config.Config) (config.Config, error) {
				cfg, _ = config.Normalize(cfg)
				return cfg, nil
			}); err != nil {
				return err
			}

			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}
			if cfg.HTTP.Host == "" {
				cfg.HTTP.Host = options.Host
			}
			if cfg.HTTP.Port == 0 {
				cfg.HTTP.Port = options.Port
			}
			if options.Display != "" {
				cfg.Display = options.Display
			}

			return app.Run(ctx, cfg)
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
