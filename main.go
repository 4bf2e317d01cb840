// main.go
package main

import (
	"log"
	"os"

	"github.com/michelledlee/iRate-Database/cmd"
	"github.com/michelledlee/iRate-Database/internal/data/repository"
	"github.com/michelledlee/iRate-Database/internal/wire"
	"github.com/michelledlee/iRate-Database/pkg/database"
	"github.com/michelledlee/iRate-Database/pkg/utils"

	"go.uber.org/zap"
)

// os.Exit skips deferred calls, so run owns the defers and main only
// translates its result into an exit code.
func main() {
	os.Exit(run())
}

func run() int {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, config, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Run the requested command
	return cmd.Run(app, os.Args[1:])
}
