// Command nodeproxy-shell is an interactive client that browses a remote
// address space through typed node proxies.
//
// Navigation and reads go through the proxies' attribute and child caches,
// so the shell shows what a program using the proxies would see: cached
// values, resolved children and remote round trips only where needed. The
// link reconnects with backoff when the server goes away; every reconnect
// starts from fresh proxies.
//
// Usage:
//
//	nodeproxy-shell [flags]
//
// Flags:
//
//	-address string       Server address (default "127.0.0.1:4840")
//	-root string          Entity opened at start (default "i=85")
//	-timeout duration     Per-command timeout (default 10s)
//	-log-level string     Log level: debug, info, warn, error (default "warn")
//	-protocol-log string  Write protocol events to this CBOR log file
//	-trace                Print request spans to stderr
//	-metrics-addr string  Serve Prometheus metrics on this address
//	-no-reconnect         Do not reconnect after the connection is lost
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/nodeproxy/nodeproxy-go/pkg/connection"
	"github.com/nodeproxy/nodeproxy-go/pkg/interaction"
	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/transport"
)

// Config holds the shell configuration.
type Config struct {
	Address     string
	Root        string
	Timeout     time.Duration
	LogLevel    string
	ProtocolLog string
	Trace       bool
	MetricsAddr string
	NoReconnect bool
}

var config Config

func init() {
	flag.StringVar(&config.Address, "address", transport.DefaultAddress, "Server address")
	flag.StringVar(&config.Root, "root", "i=85", "Entity opened at start")
	flag.DurationVar(&config.Timeout, "timeout", interaction.DefaultRequestTimeout, "Per-command timeout")
	flag.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "Write protocol events to this CBOR log file")
	flag.BoolVar(&config.Trace, "trace", false, "Print request spans to stderr")
	flag.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flag.BoolVar(&config.NoReconnect, "no-reconnect", false, "Do not reconnect after the connection is lost")
}

func main() {
	flag.Parse()

	root, err := validateConfig(&config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nodeproxy-shell: %v\n", err)
		os.Exit(2)
	}

	if err := run(config, root); err != nil {
		fmt.Fprintf(os.Stderr, "nodeproxy-shell: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, root model.EntityRef) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nodeproxy> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	// Log output goes through readline so it does not clobber the prompt.
	lvl, _ := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(rl.Stderr(), &slog.HandlerOptions{Level: lvl}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	var events log.Logger
	if cfg.ProtocolLog != "" {
		file, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return fmt.Errorf("open protocol log: %w", err)
		}
		defer file.Close()
		events = file
	}

	linkCfg := linkConfig{
		Address:        cfg.Address,
		RequestTimeout: cfg.Timeout,
		Connection:     connection.DefaultConfig(),
		Logger:         logger,
		Events:         events,
	}
	linkCfg.Connection.AutoReconnect = !cfg.NoReconnect
	linkCfg.Connection.Logger = logger

	if cfg.Trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(rl.Stderr()), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer func() { _ = tp.Shutdown(context.Background()) }()
		linkCfg.TracerProvider = tp
	}

	reg := prometheus.NewRegistry()
	linkCfg.Registerer = reg
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer srv.Close()
	}

	l, err := newLink(linkCfg)
	if err != nil {
		return err
	}
	defer l.Close()

	sh := newShell(l, root, cfg.Timeout)
	sh.metrics = reg
	sh.status = func() string { return linkStatus(cfg.Address, l) }
	l.OnSession(func(*session) { sh.reset() })

	fmt.Fprintf(rl.Stdout(), "Connecting to %s...\n", cfg.Address)
	if err := l.Connect(ctx, 3); err != nil {
		return err
	}

	sh.Run(ctx, rl)
	return nil
}

func validateConfig(cfg *Config) (model.EntityRef, error) {
	if cfg.Address == "" {
		return model.EntityRef{}, errors.New("address must not be empty")
	}
	if cfg.Timeout <= 0 {
		return model.EntityRef{}, errors.New("timeout must be positive")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return model.EntityRef{}, err
	}
	root, err := model.ParseRef(cfg.Root)
	if err != nil {
		return model.EntityRef{}, fmt.Errorf("invalid root: %w", err)
	}
	return root, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}

func linkStatus(addr string, l *link) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Server:     %s\n", addr)
	fmt.Fprintf(&b, "State:      %s\n", l.State())
	if s := l.session(); s != nil {
		fmt.Fprintf(&b, "Connection: %s\n", s.conn.ConnID())
		if local := s.conn.LocalAddr(); local != nil {
			fmt.Fprintf(&b, "Local:      %s\n", local)
		}
	}
	fmt.Fprintf(&b, "Retries:    %d", l.manager.BackoffAttempts())
	return b.String()
}
