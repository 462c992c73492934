package file

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshelf/catalog-api/services"
	"github.com/studyshelf/catalog-api/utils/response"
	"github.com/studyshelf/catalog-api/utils/validation"
)

// FileHandler handles file-related requests
type FileHandler struct {
	validator   *validation.Validator
	fileService *services.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{
		validator:   validation.NewValidator(),
		fileService: fileService,
	}
}

// ListFiles handles GET /api/v1/files
// An optional ?name= query filters by exact file name.
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	name := c.Query("name", "")

	if name != "" {
		files, err := h.fileService.GetByName(c.Context(), name)
		if err != nil {
			return response.FromError(c, err)
		}
		return response.Success(c, files)
	}

	files, err := h.fileService.GetAll(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, files)
}

// ListBySubject handles GET /api/v1/files/:subjectId
// No files for the subject is success with an empty list.
func (h *FileHandler) ListBySubject(c *fiber.Ctx) error {
	subjectID, err := parseParamID(c, "subjectId")
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	files, err := h.fileService.GetBySubject(c.Context(), subjectID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, files)
}

// GetFile handles GET /api/v1/files/detail/:id
func (h *FileHandler) GetFile(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid file ID")
	}

	file, err := h.fileService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, file)
}

// CreateFile handles POST /api/v1/files
func (h *FileHandler) CreateFile(c *fiber.Ctx) error {
	var req services.CreateFileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	file, err := h.fileService.Create(c.Context(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, file)
}

// UpdateFile handles PUT /api/v1/files/:id
func (h *FileHandler) UpdateFile(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid file ID")
	}

	var req services.UpdateFileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	file, err := h.fileService.Update(c.Context(), id, req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, file)
}

// DeleteFile handles DELETE /api/v1/files/:id
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid file ID")
	}

	if err := h.fileService.Delete(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "File deleted", nil)
}

// Download handles POST /api/v1/files/:id/download
// Bumps the download counter and returns the updated file.
func (h *FileHandler) Download(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid file ID")
	}

	file, err := h.fileService.IncrementDownloads(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, file)
}

// View handles POST /api/v1/files/:id/view
// Bumps the view counter and returns the updated file.
func (h *FileHandler) View(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid file ID")
	}

	file, err := h.fileService.IncrementViews(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, file)
}

func parseParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
