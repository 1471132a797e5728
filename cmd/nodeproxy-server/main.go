// Command nodeproxy-server serves an address space over the framed
// request protocol.
//
// It is the counterpart used to exercise node proxies end to end: it loads
// an address space from YAML, answers Read, Write, Browse and Describe
// requests, and optionally animates a few server variables.
//
// Usage:
//
//	nodeproxy-server [flags]
//
// Flags:
//
//	-space string         Address space YAML file (default: built-in sample)
//	-address string       Listen address (default "127.0.0.1:4840")
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  Write protocol events to this CBOR log file
//	-simulate             Animate ServiceLevel and ServerStatus values
//
// Examples:
//
//	# Serve the built-in sample space
//	nodeproxy-server
//
//	# Serve a custom space with protocol logging
//	nodeproxy-server -space plant.yaml -protocol-log /tmp/server.log
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/interaction"
	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/transport"
)

//go:embed space.yaml
var sampleSpace []byte

// Config holds the server configuration.
type Config struct {
	SpaceFile   string
	Address     string
	LogLevel    string
	ProtocolLog string
	Simulate    bool
}

var config Config

func init() {
	flag.StringVar(&config.SpaceFile, "space", "", "Address space YAML file (default: built-in sample)")
	flag.StringVar(&config.Address, "address", transport.DefaultAddress, "Listen address")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "Write protocol events to this CBOR log file")
	flag.BoolVar(&config.Simulate, "simulate", false, "Animate ServiceLevel and ServerStatus values")
}

func main() {
	flag.Parse()

	if err := validateConfig(&config); err != nil {
		fmt.Fprintf(os.Stderr, "nodeproxy-server: %v\n", err)
		os.Exit(2)
	}

	logger := setupLogging(config.LogLevel)

	if err := run(logger, config); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg Config) error {
	space, err := loadSpace(cfg.SpaceFile)
	if err != nil {
		return err
	}
	logger.Info("address space loaded", "entities", space.Len(), "root", space.Root().Ref())

	events, closeEvents, err := setupProtocolLog(logger, cfg.ProtocolLog)
	if err != nil {
		return err
	}
	defer closeEvents()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := interaction.NewServer(space, interaction.ServerConfig{
		Logger:      logger,
		EventLogger: events,
	})

	srvCfg := transport.DefaultServerConfig()
	srvCfg.Address = cfg.Address
	srvCfg.Logger = events
	srvCfg.OnConnect = func(conn *transport.ServerConn) {
		logger.Info("client connected", "conn", conn.ConnID(), "remote", conn.RemoteAddr())
	}
	srvCfg.OnDisconnect = func(conn *transport.ServerConn) {
		logger.Info("client disconnected", "conn", conn.ConnID())
	}
	srvCfg.OnMessage = func(conn *transport.ServerConn, msg []byte) {
		out := handler.HandleFrame(ctx, conn.ConnID(), msg)
		if out == nil {
			return
		}
		if err := conn.Send(out); err != nil {
			logger.Warn("send failed", "conn", conn.ConnID(), "error", err)
		}
	}
	srvCfg.OnError = func(conn *transport.ServerConn, err error) {
		logger.Warn("connection error", "conn", conn.ConnID(), "error", err)
	}

	srv, err := transport.NewServer(srvCfg)
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start listener: %w", err)
	}
	logger.Info("listening", "address", srv.Addr().String())

	startedAt := time.Now().UTC()
	bindServerStatus(space, startedAt)

	if cfg.Simulate {
		go runSimulation(ctx, logger, space)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String(), "connections", srv.ConnectionCount())

	cancel()
	return srv.Stop()
}

func validateConfig(cfg *Config) error {
	if cfg.Address == "" {
		return errors.New("address must not be empty")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func setupLogging(level string) *slog.Logger {
	lvl, _ := parseLevel(level)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func loadSpace(path string) (*model.Space, error) {
	if path == "" {
		return model.LoadSpace(sampleSpace)
	}
	return model.LoadSpaceFile(path)
}

// setupProtocolLog returns the event sink shared by transport and
// interaction layers. Debug-level slog output always receives events; a
// file log is added when path is set.
func setupProtocolLog(logger *slog.Logger, path string) (log.Logger, func(), error) {
	adapter := log.NewSlogAdapter(logger)
	if path == "" {
		return adapter, func() {}, nil
	}

	file, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open protocol log: %w", err)
	}
	multi := log.NewMultiLogger(adapter, file)
	logger.Info("protocol log enabled", "path", path)
	return multi, func() {
		if err := multi.Close(); err != nil {
			logger.Warn("close protocol log", "error", err)
		}
	}, nil
}
