package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/GamepadTest/internal/config"
	"github.com/soar/GamepadTest/internal/console"
	"github.com/soar/GamepadTest/internal/device"
	"github.com/soar/GamepadTest/internal/hub"
	ilog "github.com/soar/GamepadTest/internal/log"
	"github.com/soar/GamepadTest/internal/loop"
	"github.com/soar/GamepadTest/internal/mapping"
	"github.com/soar/GamepadTest/internal/server"
	"github.com/soar/GamepadTest/internal/tray"
	"github.com/soar/GamepadTest/internal/window"
)

const windowTitle = "Gamepad Test"

// SDL must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// Double-clicked builds have nowhere to print, so fall back to a file.
	logFile := cfg.LogFile
	if !console.FromTerminal() && logFile == "" {
		logFile = config.AppName + ".log"
	}
	logger, closers, err := ilog.SetupLogger(cfg.LogLevel, logFile)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	slog.SetDefault(logger)
	if cfg.ConfigFile != "" {
		logger.Info("Config loaded", "file", cfg.ConfigFile)
	}

	// Quit requests from signals, the console handler and the tray all land
	// here and are drained by the loop ahead of device events.
	control := loop.NewQueue(8)
	requestQuit := func() {
		if !control.Quit() {
			logger.Debug("quit already pending")
		}
	}
	reregister := console.OnInterrupt(requestQuit, logger)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	go func() {
		<-sigCtx.Done()
		requestQuit()
	}()

	db, err := mapping.Load(cfg.MappingDB)
	if err != nil {
		logger.Warn("Mapping database not loaded", "path", cfg.MappingDB, "error", err)
	} else {
		logger.Info("Mapping database read", "path", cfg.MappingDB, "entries", len(db.Entries), "skipped", db.Skipped)
	}

	src, err := device.Open(device.Options{Device: cfg.Device, DB: db, Logger: logger})
	if err != nil {
		return err
	}
	defer src.Close()
	reregister()

	win, err := window.Open(windowTitle)
	if err != nil {
		return err
	}
	defer win.Close()

	l := &loop.Loop{
		Source:   loop.Merge(control, src),
		Actuator: src,
		Sink:     win,
		Interval: cfg.Interval,
		Logger:   logger,
	}

	var mirrorURL string
	if cfg.MirrorAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b, shutdown, err := startMirror(ctx, cfg.MirrorAddr, logger)
		if err != nil {
			logger.Warn("Mirror disabled", "error", err)
		} else {
			defer shutdown()
			l.Observers = append(l.Observers, b)
			mirrorURL = server.URL(cfg.MirrorAddr)
			logger.Info("Mirror started", "url", mirrorURL)
		}
	}

	if runtime.GOOS == "windows" {
		t := tray.New(config.AppName, mirrorURL, requestQuit, logger)
		go t.Run()
		defer t.Quit()
	} else {
		logger.Info("Press Ctrl+C to exit")
	}

	logger.Info(config.AppName+" started", "interval", cfg.Interval, "device", cfg.Device)
	l.Run()
	logger.Info(config.AppName+" stopped", "frames", l.Frames())
	return nil
}

// startMirror runs the hub, broadcaster and HTTP server until ctx is done.
// The returned shutdown stops the HTTP server.
func startMirror(ctx context.Context, addr string, logger *slog.Logger) (*hub.Broadcaster, func(), error) {
	h := hub.NewHub(logger)
	b := hub.NewBroadcaster(h, logger)

	srv, err := server.New(h, b, frontendFS(), addr, logger)
	if err != nil {
		return nil, nil, err
	}

	go h.Run(ctx)
	go b.Run(ctx)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Mirror server failed", "addr", addr, "error", err)
		}
	}()

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Mirror shutdown failed", "error", err)
		}
	}
	return b, shutdown, nil
}
