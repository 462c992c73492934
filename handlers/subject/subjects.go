package subject

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshelf/catalog-api/services"
	"github.com/studyshelf/catalog-api/utils/response"
	"github.com/studyshelf/catalog-api/utils/validation"
)

// SubjectHandler handles subject-related requests
type SubjectHandler struct {
	validator      *validation.Validator
	subjectService *services.SubjectService
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjectService *services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		validator:      validation.NewValidator(),
		subjectService: subjectService,
	}
}

// ListSubjects handles GET /api/v1/subjects
// An optional ?search= query filters by name, description or category.
func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	search := c.Query("search", "")

	if search != "" {
		subjects, err := h.subjectService.Search(c.Context(), search)
		if err != nil {
			return response.FromError(c, err)
		}
		return response.Success(c, subjects)
	}

	subjects, err := h.subjectService.GetAll(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, subjects)
}

// GetSubject handles GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	subject, err := h.subjectService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, subject)
}

// GetSubjectWithFiles handles GET /api/v1/subjects/:id/files
func (h *SubjectHandler) GetSubjectWithFiles(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	result, err := h.subjectService.GetWithFiles(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, result)
}

// CreateSubject handles POST /api/v1/subjects
func (h *SubjectHandler) CreateSubject(c *fiber.Ctx) error {
	var req services.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject, err := h.subjectService.Create(c.Context(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, subject)
}

// UpdateSubject handles PUT /api/v1/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	var req services.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject, err := h.subjectService.Update(c.Context(), id, req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, subject)
}

// DeleteSubject handles DELETE /api/v1/subjects/:id
// Deleting a subject also deletes every file attached to it.
func (h *SubjectHandler) DeleteSubject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	if err := h.subjectService.Delete(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Subject and its files deleted", nil)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
