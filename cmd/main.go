package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "anti_bark/docs"
	"anti_bark/internal/config"
	"anti_bark/internal/device"
	"anti_bark/internal/handlers"
	"anti_bark/internal/hardware"
	"anti_bark/internal/logger"
	"anti_bark/internal/repository"
	"anti_bark/internal/repository/db"
	"anti_bark/internal/server"
	"anti_bark/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	flagConfig   string
	flagPort     string
	flagLogLevel string
)

// @title                       Anti-bark device bench API
// @version                     1.0
// @description                 Virtual IR remote, live state and event history for the anti-bark controller.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "anti_bark",
		Short: "Anti-bark deterrent controller with a bench API",
		Long: `Runs the anti-bark controller against simulated outputs and a virtual
IR receiver, and serves the bench API for pressing remote keys, reading the
live device state and browsing the event history.

Configuration comes from configs/config.yml (or --config) and ANTIBARK_*
environment variables. Flags override both.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", os.Getenv("ANTIBARK_CONFIG_FILE"), "Path to the config file")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "HTTP port, overrides the config value")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug|info|warn|error), overrides the config value")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("error reading config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	// open DB
	conn, err := openDB(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("failed to init sqlite: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	keys := hardware.NewKeyQueue(cfg.KeyQueueSize)
	ctl := device.NewController(device.Deps{
		Outputs: hardware.NewSimOutputs(log.Named("outputs")),
		Input:   keys,
		Store:   repos.ConfigRepo,
		Events:  repos.EventRepo,
		Random:  hardware.NewRandom(cfg.RandomSeed),
		Clock:   hardware.SystemClock{},
	}, cfg.Device, log.Named("device"))

	services := service.NewService(repos,
		service.DeviceDeps{Controller: ctl, Keys: keys, Log: log.Named("device")},
		service.AuthConfig{SigningKey: signingKey(cfg.SigningKey, log), TokenTTL: cfg.TokenTTL},
	)
	apiHandler := handlers.NewHandler(services, log.Named("http"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the control loop
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		services.Device.Run(ctx, cfg.Tick)
	}()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, loopDone, srv, log)
	return nil
}

// openDB initializes the SQLite database and schema.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", path)
	return db.InitDB(path)
}

// signingKey falls back to a per-process random key when none is configured.
func signingKey(configured string, log *logger.Logger) string {
	if configured != "" {
		return configured
	}
	log.Warnw("auth.signing_key not set; tokens will not survive a restart")
	return uuid.NewString()
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, loopDone <-chan struct{}, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the control loop; it silences the outputs on exit
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	select {
	case <-loopDone:
	case <-ctx.Done():
		log.Warnw("control loop did not stop in time")
	}

	// allow in-flight requests to complete
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
