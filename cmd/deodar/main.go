package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ayusman/deodar/internal/app"
	"github.com/ayusman/deodar/internal/config"
	"github.com/ayusman/deodar/internal/gesture"
	"github.com/ayusman/deodar/internal/server"
	"github.com/ayusman/deodar/internal/tray"
)

func main() {
	fmt.Println("Deodar - Gesture-Controlled Holiday Scene")

	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	a := app.New(app.Config{
		CameraID:     cfg.CameraID,
		MotionThresh: cfg.MotionThresh,
		HookDir:      cfg.HookDir,
		Scene:        cfg.ToScene(),
	})

	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	}

	a.Scene().SetParams(cfg.Params)
	for _, url := range cfg.Photos {
		a.Scene().Photos().Add(url)
	}

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		App:       a,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start scene: %v", err)
	}
	defer a.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: srv}
	g.Go(func() error {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return httpSrv.Shutdown(context.Background())
	})

	if cfg.Tray {
		// systray.Run must own the main goroutine.
		t := tray.New()
		t.OnToggle(a.SetEnabled)
		t.OnQuit(stop)
		a.OnModeChange(func(m gesture.Mode) { t.SetMode(m.String()) })
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		t.Run()
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// defaultConfigPath returns ~/.deodar/deodar.yaml, or a relative path when
// the home directory is unavailable.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "deodar.yaml"
	}
	return filepath.Join(homeDir, ".deodar", "deodar.yaml")
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.deodar/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".deodar", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
