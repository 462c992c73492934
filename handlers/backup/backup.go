package backup

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshelf/catalog-api/services"
	"github.com/studyshelf/catalog-api/utils/response"
)

// BackupHandler handles backup, restore and export requests
type BackupHandler struct {
	backupService *services.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// DownloadBackup handles GET /api/v1/backup
// Serves the full snapshot as a JSON download named backup_<date>.json.
func (h *BackupHandler) DownloadBackup(c *fiber.Ctx) error {
	snapshot, err := h.backupService.Backup(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", services.BackupFileName(snapshot.Timestamp)))
	return c.Status(fiber.StatusOK).JSON(snapshot)
}

// Restore handles POST /api/v1/backup/restore
// Replaces the entire data set with the uploaded snapshot.
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var snapshot services.Snapshot
	if err := c.BodyParser(&snapshot); err != nil {
		return response.BadRequest(c, "Invalid snapshot body")
	}

	if err := h.backupService.Restore(c.Context(), &snapshot); err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Snapshot restored", fiber.Map{
		"subjects": len(snapshot.Subjects),
		"files":    len(snapshot.Files),
		"users":    len(snapshot.Users),
	})
}

// ExportCSV handles GET /api/v1/export.csv
func (h *BackupHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.backupService.ExportCSV(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", services.ExportFileName(time.Now())))
	return c.Status(fiber.StatusOK).Send(data)
}
