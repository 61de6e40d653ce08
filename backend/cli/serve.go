package cli

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/middleware"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/routes"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the subcommand that starts the API server.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Learnix API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := utils.InitDB(cfg)
	if err != nil {
		return err
	}

	logger := utils.InitLogger()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, x-auth-token",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	routes.SetupRoutes(app, db, cfg)

	logger.Printf("server listening on :%s", cfg.ServerPort)
	return app.Listen(":" + cfg.ServerPort)
}
