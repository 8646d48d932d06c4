package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"db-compare/core/config"
	"db-compare/core/loader"
	"db-compare/core/logger"
	"db-compare/core/middleware/auth"
	"db-compare/core/middleware/rayid"
	"db-compare/feature/comparison"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveComparisons string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the comparison API server",
	Long:  `Starts the HTTP server exposing the configured comparisons.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		path := cfg.Server.ComparisonsFile
		if serveComparisons != "" {
			path = serveComparisons
		}
		file, err := config.LoadComparisons(path)
		if err != nil {
			return err
		}

		svc, err := newService(cfg, file.Comparisons, logg, serviceOptions{})
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(comparison.NewFeature(svc, logg))

		// RayID first so every log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key is not set; the API is unprotected")
		}

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.Int("comparisons", len(file.Comparisons)),
			)
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveComparisons, "comparisons", "c", "", "Comparisons file (overrides SERVER_COMPARISONS_FILE)")
	RootCmd.AddCommand(serveCmd)
}
