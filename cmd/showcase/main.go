// Package main is the entry point for the showcase server.
//
// showcase serves the prototype registry of a folder tree, the "What's next"
// idea gallery and the mock data of the CRM demo as a JSON HTTP API.
// Configuration is read from CLI flags, a .env file in the data directory and
// server_config.json (rate limits and quotas).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hqo/showcase/internal/config"
	"github.com/hqo/showcase/internal/crm"
	"github.com/hqo/showcase/internal/gallery"
	"github.com/hqo/showcase/internal/prefs"
	"github.com/hqo/showcase/internal/registry"
	"github.com/hqo/showcase/internal/server"
	"github.com/hqo/showcase/internal/server/bandwidth"
	"github.com/hqo/showcase/internal/server/handlers"
	"github.com/hqo/showcase/internal/server/ipgeo"
	"github.com/hqo/showcase/internal/server/ratelimit"
	"github.com/hqo/showcase/internal/uistate"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	version := flag.Bool("version", false, "Print version and exit")
	httpAddr := flag.String("http", "localhost:8080", "Address to listen on (e.g., localhost:8080, :8080, 0.0.0.0:8080). Use 0.0.0.0:port to listen on all interfaces.")
	prototypesDir := flag.String("prototypes-dir", "./prototypes", "Directory holding one folder per prototype")
	dataDir := flag.String("data-dir", "./data", "Data directory for ideas, preferences and server_config.json")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	geoDB := flag.String("geo-db", "", "Path to MaxMind MMDB file for IP geolocation (optional)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	if *version {
		printVersion()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	// Skip timestamps when running under systemd (it adds its own).
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			if a.Key == "ip" {
				if v := a.Value.String(); v == "127.0.0.1" || v == "::1" {
					return slog.Attr{}
				}
			}
			skip := false
			switch t := a.Value.Any().(type) {
			case string:
				skip = t == ""
			case bool:
				skip = !t
			case int64:
				skip = t == 0
			case float64:
				skip = t == 0
			case time.Duration:
				skip = t == 0
			case nil:
				skip = true
			}
			if skip {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	env, err := loadDotEnv(*dataDir)
	if err != nil {
		return err
	}

	// Override with .env file values if not explicitly set via flags.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	for name, dst := range map[string]*string{
		"http":           httpAddr,
		"prototypes-dir": prototypesDir,
		"log-level":      logLevel,
		"geo-db":         geoDB,
	} {
		if set[name] {
			continue
		}
		if v := env[envKey(name)]; v != "" {
			*dst = v
		}
	}

	switch *logLevel {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info":
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %q", *logLevel)
	}

	serverCfg, err := config.Load(*dataDir)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", config.FileName, err)
	}

	addr := *httpAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	if err := watchExecutable(ctx, stop); err != nil {
		return fmt.Errorf("failed to watch executable: %w", err)
	}

	ideas, err := gallery.NewIdeaService(filepath.Join(*dataDir, "ideas.jsonl"))
	if err != nil {
		return fmt.Errorf("failed to initialize idea service: %w", err)
	}
	store, err := prefs.Open(filepath.Join(*dataDir, "prefs.json"))
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	catalog, err := crm.Default()
	if err != nil {
		return fmt.Errorf("failed to load CRM datasets: %w", err)
	}
	if _, err := os.Stat(*prototypesDir); err != nil {
		slog.WarnContext(ctx, "Prototypes directory is not readable; the listing will be empty", "dir", *prototypesDir, "err", err)
	}

	limits := ratelimit.NewConfig(serverCfg.RateLimits)
	defer limits.Close()

	svc := &handlers.Services{
		Registry: registry.New(*prototypesDir),
		Ideas:    ideas,
		Upvotes:  gallery.NewUpvotes(store),
		Session:  uistate.NewSession(store),
		CRM:      catalog,
		Egress:   bandwidth.NewLimiter(serverCfg.Quotas.MaxEgressBandwidthBps),
	}

	var geoChecker *ipgeo.Checker
	if *geoDB != "" {
		geoChecker, err = ipgeo.Open(*geoDB)
		if err != nil {
			return err
		}
		defer func() { _ = geoChecker.Close() }()
		slog.InfoContext(ctx, "IP geolocation enabled", "db", *geoDB)
	}

	buildVersion, _, _, _ := getBuildInfo()
	cfg := &server.Config{
		ServerConfig: serverCfg,
		Version:      buildVersion,
		IPGeo:        geoChecker,
		Limits:       limits,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(svc, cfg),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "Starting server", "addr", addr, "prototypes", *prototypesDir, "version", buildVersion)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.InfoContext(ctx, "Server stopped")
	}
	return nil
}

// envKey maps a flag name to its .env key: "prototypes-dir" is PROTOTYPES_DIR.
func envKey(flagName string) string {
	return strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// loadDotEnv reads <dataDir>/.env. A missing file is not an error.
func loadDotEnv(dataDir string) (map[string]string, error) {
	env, err := godotenv.Read(filepath.Join(dataDir, ".env"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return env, nil
}

func printVersion() {
	version, goVersion, revision, dirty := getBuildInfo()
	fmt.Printf("showcase %s\n", version)
	fmt.Printf("  Go version: %s\n", goVersion)
	fmt.Printf("  Revision:   %s\n", revision)
	if dirty {
		fmt.Printf("  Modified:   true\n")
	}
}

func getBuildInfo() (version, goVersion, revision string, dirty bool) {
	version = "unknown"
	goVersion = "unknown"
	revision = "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	version = info.Main.Version
	if version == "" || version == "(devel)" {
		version = "dev"
	}
	goVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return
}

// watchExecutable stops the server when its binary is rewritten, so a
// supervisor restarts the new build.
func watchExecutable(ctx context.Context, stop context.CancelFunc) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(exe); err != nil {
		_ = w.Close()
		return err
	}
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Chmod) {
					slog.InfoContext(ctx, "Executable modified, initiating shutdown")
					stop()
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching executable", "err", err)
			}
		}
	}()
	return nil
}
