package app

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/studyshelf/catalog-api/api"
	"github.com/studyshelf/catalog-api/config"
	"github.com/studyshelf/catalog-api/database"
	"github.com/studyshelf/catalog-api/router"
	"github.com/studyshelf/catalog-api/services"
	"github.com/studyshelf/catalog-api/services/cron"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Open the catalog store. A store that cannot be opened is a distinct
	// failure from an empty store; with MIRROR_URL set, a read-only
	// session against the remote mirror is still possible.
	store, err := database.StartGORM()
	if err != nil {
		if getEnv.MIRROR_URL != "" {
			log.Printf("Local store unavailable, mirror configured at %s", getEnv.MIRROR_URL)
		}
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize store collections\n")
		print("Error running migrations:\n")
		return err
	}

	// Seed the fixed default data set when the store is empty
	if err := database.RunSeeds(store.DB()); err != nil {
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		statsService := services.NewStatsService(store.DB())
		cronManager = cron.NewCronManager(statsService, getEnv.STATS_REFRESH_CRON)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	// Custom Logger
	app.Use(logger.New())

	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store)

	// Get the PORT & Start the Server
	return server.Run()

}
