// Package app assembles the process: display connection, windows from
// config, the frame loop, the HTTP API, all under one supervision tree.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ryngard/xsurface/internal/api"
	"github.com/ryngard/xsurface/internal/bus"
	"github.com/ryngard/xsurface/internal/config"
	"github.com/ryngard/xsurface/internal/xdisplay"
	"github.com/ryngard/xsurface/internal/xwindow"
	"github.com/ryngard/xsurface/pkg/sutureext"
)

const frameInterval = 16 * time.Millisecond

func Run(ctx context.Context, cfg config.Config) error {
	d, err := xdisplay.Open(cfg.Display)
	if err != nil {
		return err
	}
	defer d.Close()

	windows := make([]*xwindow.Window, 0, len(cfg.Windows))
	for _, cw := range cfg.Windows {
		props, err := windowProperties(cw)
		if err != nil {
			return fmt.Errorf("window %s: %w", cw.UUID, err)
		}
		windows = append(windows,
			xwindow.New(d, cw.UUID, framebufferProperties(cw), props, cw.ConfirmClose))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	subscribeWindowEvents(cancel, windows)

	for _, w := range windows {
		if err := w.Open(); err != nil {
			for _, o := range windows {
				o.Destroy()
			}
			return fmt.Errorf("open window %s: %w", w.UUID, err)
		}
	}

	super := sutureext.NewSimple("app")
	sutureext.Add(super, sutureext.NewServiceFunc("xdisplay.Pump", d.Pump))
	sutureext.Add(super, sutureext.NewServiceFunc("app.frameLoop", func(ctx context.Context) error {
		return frameLoop(ctx, windows)
	}))
	if cfg.HTTP.Enable {
		address := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		sutureext.Add(super, api.NewServer(address, api.New(windows)))
	}

	err = super.Serve(ctx)

	for _, w := range windows {
		w.Destroy()
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func subscribeWindowEvents(cancel context.CancelFunc, windows []*xwindow.Window) {
	find := func(uuid string) *xwindow.Window {
		for _, w := range windows {
			if w.UUID == uuid {
				return w
			}
		}
		return nil
	}

	bus.Subscribe("app", func(ctx context.Context, ev bus.WindowCloseRequested) error {
		w := find(ev.UUID)
		if w == nil {
			return nil
		}
		// No interactive confirmation surface yet; honor the request.
		slog.Info("window manager asked to close window", "window", ev.UUID)
		w.Close()
		return nil
	})

	bus.Subscribe("app", func(ctx context.Context, ev bus.WindowClosed) error {
		for _, w := range windows {
			if w.IsOpen() {
				return nil
			}
		}
		slog.Info("all windows closed, shutting down")
		cancel()
		return nil
	})

	bus.Subscribe("app", func(ctx context.Context, ev bus.WindowPropertiesChanged) error {
		if w := find(ev.UUID); w != nil {
			slog.Debug("window properties changed", "window", ev.UUID, "properties", w.Properties().String())
		}
		return nil
	})

	bus.Subscribe("app", func(ctx context.Context, ev bus.RawDeviceLost) error {
		slog.Warn("raw pointer device lost", "window", ev.UUID, "device", ev.Label)
		return nil
	})
}

// frameLoop drives every window once per tick: drain events and property
// requests, render, then present.
func frameLoop(ctx context.Context, windows []*xwindow.Window) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for _, w := range windows {
			w.ProcessEvents()
		}
		for _, w := range windows {
			if w.BeginFrame(xwindow.FrameRender) {
				w.EndFrame(xwindow.FrameRender)
			}
		}
		for _, w := range windows {
			w.BeginFlip()
		}
	}
}
