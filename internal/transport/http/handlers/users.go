package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
	"github.com/chanwihad/DashboardAppApi/internal/usecase"
)

// UserHandler exposes the user CRUD endpoints.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes binds user CRUD routes, guarding each verb with its
// matching gate middleware.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, gates CRUDGates) {
	r.GET("", gates.View, h.list)
	r.GET("/:id", gates.View, h.get)
	r.POST("", gates.Create, h.create)
	r.PUT("/:id", gates.Update, h.update)
	r.DELETE("/:id", gates.Delete, h.remove)
}

func (h *UserHandler) list(c *gin.Context) {
	filter := port.UserFilter{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit", 10),
		Offset: queryInt(c, "offset", 0),
	}

	rows, total, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "listing users failed"))
		return
	}

	items := make([]UserSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, toUserWithRoleSummary(row))
	}

	c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

func (h *UserHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "fetching user failed")
		return
	}

	c.JSON(http.StatusOK, toUserWithRoleSummary(*user))
}

func (h *UserHandler) create(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.users.Create(c.Request.Context(), domain.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Status:   domain.UserStatus(req.Status),
		MaxRetry: req.MaxRetry,
	}, req.Password, req.RoleID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUsernameTaken, Status: http.StatusConflict, Message: "username already taken"},
		}, http.StatusInternalServerError, "creating user failed")
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *UserHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	err := h.users.Update(c.Request.Context(), domain.User{
		ID:       id,
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Status:   domain.UserStatus(req.Status),
		MaxRetry: req.MaxRetry,
	}, req.Password, req.RoleID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "updating user failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user updated"})
}

func (h *UserHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "deleting user failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}

// CRUDGates bundles the per-verb gate middleware applied to an entity's
// routes.
type CRUDGates struct {
	View   gin.HandlerFunc
	Create gin.HandlerFunc
	Update gin.HandlerFunc
	Delete gin.HandlerFunc
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid id"))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
