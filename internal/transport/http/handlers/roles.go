package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
	"github.com/chanwihad/DashboardAppApi/internal/usecase"
)

// RoleHandler exposes the role CRUD endpoints.
type RoleHandler struct {
	roles *usecase.RoleService
}

// NewRoleHandler constructs RoleHandler.
func NewRoleHandler(roles *usecase.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// RegisterRoutes binds role CRUD routes, guarding each verb with its
// matching gate middleware.
func (h *RoleHandler) RegisterRoutes(r *gin.RouterGroup, gates CRUDGates) {
	r.GET("", gates.View, h.list)
	r.GET("/:id", gates.View, h.get)
	r.POST("", gates.Create, h.create)
	r.PUT("/:id", gates.Update, h.update)
	r.DELETE("/:id", gates.Delete, h.remove)
}

func (h *RoleHandler) list(c *gin.Context) {
	filter := port.RoleFilter{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit", 10),
		Offset: queryInt(c, "offset", 0),
	}

	roles, total, err := h.roles.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "listing roles failed"))
		return
	}

	items := make([]RoleSummary, 0, len(roles))
	for _, role := range roles {
		items = append(items, toRoleSummary(role))
	}

	c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

func (h *RoleHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	role, err := h.roles.Get(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
		}, http.StatusInternalServerError, "fetching role failed")
		return
	}

	c.JSON(http.StatusOK, toRoleDetail(*role))
}

func (h *RoleHandler) create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.roles.Create(c.Request.Context(), domain.Role{
		Name:        req.Name,
		Description: req.Description,
		CanView:     req.CanView,
		CanCreate:   req.CanCreate,
		CanUpdate:   req.CanUpdate,
		CanDelete:   req.CanDelete,
	}, req.MenuIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "creating role failed"))
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *RoleHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	err := h.roles.Update(c.Request.Context(), domain.Role{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		CanView:     req.CanView,
		CanCreate:   req.CanCreate,
		CanUpdate:   req.CanUpdate,
		CanDelete:   req.CanDelete,
	}, req.MenuIDs)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
		}, http.StatusInternalServerError, "updating role failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "role updated"})
}

func (h *RoleHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.roles.Delete(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
		}, http.StatusInternalServerError, "deleting role failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "role deleted"})
}
