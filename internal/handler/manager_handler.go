package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/middleware"
	"taskhub/internal/service"
)

// ManagerHandler handles todo delegation endpoints.
type ManagerHandler struct {
	managerService service.ManagerService
}

// NewManagerHandler creates a new manager handler.
func NewManagerHandler(managerService service.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerService: managerService}
}

// ManagerSaveRequest represents a manager assignment request.
type ManagerSaveRequest struct {
	ManagerUserID uint `json:"manager_user_id" validate:"required"`
}

// ManagerResponse represents one manager assignment with its delegate.
type ManagerResponse struct {
	ID   uint         `json:"id"`
	User UserResponse `json:"user"`
}

// Assign godoc
// @Summary Assign a manager to a todo
// @Tags managers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param todoId path int true "Todo ID"
// @Param request body ManagerSaveRequest true "Delegate user"
// @Success 201 {object} ManagerResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos/{todoId}/managers [post]
func (h *ManagerHandler) Assign(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	todoID, err := parseIDParam(c, "todoId")
	if err != nil {
		return err
	}

	var req ManagerSaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manager, err := h.managerService.Assign(c.Request().Context(), user, todoID, req.ManagerUserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, ManagerResponse{
		ID:   manager.ID,
		User: UserResponse{ID: manager.User.ID, Email: manager.User.Email},
	})
}

// List godoc
// @Summary List managers of a todo
// @Tags managers
// @Produce json
// @Security BearerAuth
// @Param todoId path int true "Todo ID"
// @Success 200 {array} ManagerResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos/{todoId}/managers [get]
func (h *ManagerHandler) List(c echo.Context) error {
	todoID, err := parseIDParam(c, "todoId")
	if err != nil {
		return err
	}

	managers, err := h.managerService.List(c.Request().Context(), todoID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	responses := make([]ManagerResponse, 0, len(managers))
	for _, m := range managers {
		responses = append(responses, ManagerResponse{
			ID:   m.ID,
			User: UserResponse{ID: m.User.ID, Email: m.User.Email},
		})
	}
	return c.JSON(http.StatusOK, responses)
}

// Unassign godoc
// @Summary Remove a manager from a todo
// @Tags managers
// @Security BearerAuth
// @Param todoId path int true "Todo ID"
// @Param managerId path int true "Manager ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos/{todoId}/managers/{managerId} [delete]
func (h *ManagerHandler) Unassign(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	todoID, err := parseIDParam(c, "todoId")
	if err != nil {
		return err
	}
	managerID, err := parseIDParam(c, "managerId")
	if err != nil {
		return err
	}

	if err := h.managerService.Unassign(c.Request().Context(), user, todoID, managerID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
