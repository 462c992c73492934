package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshelf/catalog-api/services"
	"github.com/studyshelf/catalog-api/utils/response"
	"github.com/studyshelf/catalog-api/utils/validation"
)

// UserHandler handles user-activity requests. Users here are anonymous
// local-activity records, not authenticated accounts.
type UserHandler struct {
	validator   *validation.Validator
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		validator:   validation.NewValidator(),
		userService: userService,
	}
}

// ActivityRequest represents an activity ping for an external user id
type ActivityRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAll(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, users)
}

// GetUser handles GET /api/v1/users/:userId (lookup by external id)
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByUserID(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, user)
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req services.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.userService.Create(c.Context(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, user)
}

// UpdateUser handles PUT /api/v1/users/:id (local primary key)
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var req services.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.userService.Update(c.Context(), id, req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, user)
}

// DeleteUser handles DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "User deleted", nil)
}

// LogActivity handles POST /api/v1/activity
// Touches the record for the given external user id, creating it on
// first contact. Repeating the ping only refreshes last_active.
func (h *UserHandler) LogActivity(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.userService.Touch(c.Context(), req.UserID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, user)
}
