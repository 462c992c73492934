package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyshelf/catalog-api/database"
	"github.com/studyshelf/catalog-api/handlers"
	backup_handlers "github.com/studyshelf/catalog-api/handlers/backup"
	file_handlers "github.com/studyshelf/catalog-api/handlers/file"
	stats_handlers "github.com/studyshelf/catalog-api/handlers/stats"
	subject_handlers "github.com/studyshelf/catalog-api/handlers/subject"
	user_handlers "github.com/studyshelf/catalog-api/handlers/user"
	"github.com/studyshelf/catalog-api/services"
)

// SetupRoutes wires every handler onto the fiber app. The read-only
// routes double as the remote mirror surface other installations can
// point MIRROR_URL at.
func SetupRoutes(app *fiber.App, store *database.GORMStore) {
	db := store.DB()

	statsService := services.NewStatsService(db)
	subjectService := services.NewSubjectService(db, statsService)
	fileService := services.NewFileService(db, statsService)
	userService := services.NewUserService(db, statsService)
	backupService := services.NewBackupService(db, statsService)

	subjectHandler := subject_handlers.NewSubjectHandler(subjectService)
	fileHandler := file_handlers.NewFileHandler(fileService)
	userHandler := user_handlers.NewUserHandler(userService)
	statsHandler := stats_handlers.NewStatsHandler(statsService)
	backupHandler := backup_handlers.NewBackupHandler(backupService)

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// API v1 group
	api := app.Group("/api/v1")

	// Subjects routes
	subjects := api.Group("/subjects")
	subjects.Get("/", subjectHandler.ListSubjects)                 // Public: list/search subjects (mirror surface)
	subjects.Get("/:id", subjectHandler.GetSubject)                // Public: get subject by ID
	subjects.Get("/:id/files", subjectHandler.GetSubjectWithFiles) // Public: subject joined with its files
	subjects.Post("/", subjectHandler.CreateSubject)               // Create subject
	subjects.Put("/:id", subjectHandler.UpdateSubject)             // Update subject metadata
	subjects.Delete("/:id", subjectHandler.DeleteSubject)          // Delete subject and cascade to its files

	// Files routes
	files := api.Group("/files")
	files.Get("/", fileHandler.ListFiles)               // Public: list files
	files.Get("/detail/:id", fileHandler.GetFile)       // Public: get file by ID
	files.Get("/:subjectId", fileHandler.ListBySubject) // Public: files of one subject (mirror surface)
	files.Post("/", fileHandler.CreateFile)             // Attach file to a subject
	files.Put("/:id", fileHandler.UpdateFile)           // Update file metadata
	files.Delete("/:id", fileHandler.DeleteFile)        // Delete file
	files.Post("/:id/download", fileHandler.Download)   // Bump download counter
	files.Post("/:id/view", fileHandler.View)           // Bump view counter

	// Users routes
	users := api.Group("/users")
	users.Get("/", userHandler.ListUsers)          // List activity records
	users.Get("/:userId", userHandler.GetUser)     // Lookup by external user id
	users.Post("/", userHandler.CreateUser)        // Explicit add
	users.Put("/:id", userHandler.UpdateUser)      // Update by local id
	users.Delete("/:id", userHandler.DeleteUser)   // Delete by local id
	api.Post("/activity", userHandler.LogActivity) // Activity ping (creates on first contact)

	// Statistics routes
	statsGroup := api.Group("/stats")
	statsGroup.Get("/", statsHandler.GetStatistics)           // Public: aggregate snapshot (mirror surface)
	statsGroup.Post("/recompute", statsHandler.Recompute)     // Force an aggregation pass
	statsGroup.Get("/popular", statsHandler.PopularFiles)     // Files by downloads desc
	statsGroup.Get("/recent/files", statsHandler.RecentFiles) // Files by upload date desc
	statsGroup.Get("/recent/users", statsHandler.RecentUsers) // Users by last activity desc
	api.Get("/dashboard", statsHandler.GetDashboard)          // Aggregate dashboard view

	// Backup / restore / export routes
	api.Get("/backup", backupHandler.DownloadBackup)
	api.Post("/backup/restore", backupHandler.Restore)
	api.Get("/export.csv", backupHandler.ExportCSV)
}
