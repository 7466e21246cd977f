package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

// UserHandler serves profile self-service and admin user management.
type UserHandler struct {
	service ports.UserService
	log     zerolog.Logger
}

func NewUserHandler(service ports.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  any    `json:"address"`
}

type updateRoleRequest struct {
	Role *int `json:"role" validate:"required,oneof=0 1"`
}

// UpdateProfile changes the caller's own profile. Email cannot be changed
// here.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /auth/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid payload", nil)
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), callerID(c), ports.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPasswordTooShort) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Password is required and 6 character long",
				"error":   "Password is required and 6 character long",
			})
		}
		h.log.Error().Err(err).Str("user_id", callerID(c)).Msg("profile update failed")
		return failure(c, http.StatusBadRequest, "Error While Updating Profile", err)
	}

	return success(c, http.StatusOK, "Profile Updated Successfully", echo.Map{"updatedUser": user})
}

// ListUsers returns every user without credentials.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /auth/all-users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		return failure(c, http.StatusInternalServerError, "Error while getting users", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return success(c, http.StatusOK, "All users fetched", echo.Map{"users": users})
}

// UpdateRole sets a user's role to 0 or 1. An unknown id is not an error;
// the response carries user: null.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /auth/update-role/{id} [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid role", nil)
	}

	user, err := h.service.UpdateRole(c.Request().Context(), callerID(c), c.Param("id"), domain.Role(*req.Role))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRole) {
			return failure(c, http.StatusBadRequest, "invalid role", nil)
		}
		h.log.Error().Err(err).Str("target_id", c.Param("id")).Msg("role update failed")
		return failure(c, http.StatusInternalServerError, "Error while updating role", err)
	}

	return success(c, http.StatusOK, "User role updated", echo.Map{"user": user})
}

// DeleteUser removes a user. An unknown id is not an error.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /auth/delete-user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	user, err := h.service.DeleteUser(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Str("target_id", c.Param("id")).Msg("user delete failed")
		return failure(c, http.StatusInternalServerError, "Error while deleting user", err)
	}

	return success(c, http.StatusOK, "User deleted successfully", echo.Map{"user": user})
}
