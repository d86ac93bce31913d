package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dbcompare/core/loader"
	"dbcompare/core/logger"
	"dbcompare/core/middleware/auth"
	"dbcompare/core/middleware/rayid"
	"dbcompare/feature/comparison"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "dbcompare/docs/swagger"
)

// @title dbcompare API
// @version 1.0
// @description Row level comparison of two relational databases.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the comparison server",
	Long:  `Starts the HTTP server exposing comparison runs, table listing and single table comparisons.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Server runs may overlap, so artifacts always carry the run id.
		s, err := openSession(context.Background(), configDir, nil, true)
		if err != nil {
			return err
		}
		defer s.Close()

		logg := s.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			ReadTimeout:           time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(comparison.NewFeature(s.engine, logg))

		// RayID must be first to trace everything
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		if !s.cfg.Server.IsProtected() {
			logg.Warn("No API key configured, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: s.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", s.cfg.Server.Port))
			errCh <- app.Listen(s.cfg.Server.Address())
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-c:
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
