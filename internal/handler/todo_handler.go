package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/middleware"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

// TodoHandler handles todo endpoints.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// TodoSaveRequest represents a todo creation request.
type TodoSaveRequest struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents"`
}

// TodoResponse represents a full todo projection including its owner.
type TodoResponse struct {
	ID         uint         `json:"id"`
	Title      string       `json:"title"`
	Contents   string       `json:"contents"`
	Weather    string       `json:"weather"`
	User       UserResponse `json:"user"`
	CreatedAt  time.Time    `json:"created_at"`
	ModifiedAt time.Time    `json:"modified_at"`
}

// TodoSummaryResponse is the list projection without owner detail.
type TodoSummaryResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Weather    string    `json:"weather"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// TodoPageResponse is one page of todo summaries.
type TodoPageResponse struct {
	Content       []TodoSummaryResponse `json:"content"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
	TotalElements int64                 `json:"total_elements"`
	TotalPages    int                   `json:"total_pages"`
}

// Create godoc
// @Summary Create a todo annotated with today's weather
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TodoSaveRequest true "Todo data"
// @Success 201 {object} TodoResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req TodoSaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.Create(c.Request().Context(), user, req.Title, req.Contents)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, TodoResponse{
		ID:         todo.ID,
		Title:      todo.Title,
		Contents:   todo.Contents,
		Weather:    todo.Weather,
		User:       UserResponse{ID: user.ID, Email: user.Email},
		CreatedAt:  todo.CreatedAt,
		ModifiedAt: todo.UpdatedAt,
	})
}

// List godoc
// @Summary List todos, most recently modified first
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-indexed page number" default(1)
// @Param size query int false "page size" default(10)
// @Success 200 {object} TodoPageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	todos, total, err := h.todoService.List(c.Request().Context(), page, size)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	content := make([]TodoSummaryResponse, 0, len(todos))
	for _, todo := range todos {
		content = append(content, TodoSummaryResponse{
			ID:         todo.ID,
			Title:      todo.Title,
			Weather:    todo.Weather,
			CreatedAt:  todo.CreatedAt,
			ModifiedAt: todo.UpdatedAt,
		})
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return c.JSON(http.StatusOK, TodoPageResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	})
}

// GetOne godoc
// @Summary Get one todo with its owner
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param todoId path int true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos/{todoId} [get]
func (h *TodoHandler) GetOne(c echo.Context) error {
	todoID, err := parseIDParam(c, "todoId")
	if err != nil {
		return err
	}

	todo, err := h.todoService.GetOne(c.Request().Context(), todoID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

func toTodoResponse(todo *model.Todo) TodoResponse {
	return TodoResponse{
		ID:         todo.ID,
		Title:      todo.Title,
		Contents:   todo.Contents,
		Weather:    todo.Weather,
		User:       UserResponse{ID: todo.User.ID, Email: todo.User.Email},
		CreatedAt:  todo.CreatedAt,
		ModifiedAt: todo.UpdatedAt,
	}
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
