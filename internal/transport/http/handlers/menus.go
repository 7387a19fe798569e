package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
	"github.com/chanwihad/DashboardAppApi/internal/usecase"
)

// MenuHandler exposes the menu CRUD endpoints.
type MenuHandler struct {
	menus *usecase.MenuService
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(menus *usecase.MenuService) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// RegisterRoutes binds menu CRUD routes, guarding each verb with its
// matching gate middleware.
func (h *MenuHandler) RegisterRoutes(r *gin.RouterGroup, gates CRUDGates) {
	r.GET("", gates.View, h.list)
	r.GET("/:id", gates.View, h.get)
	r.POST("", gates.Create, h.create)
	r.PUT("/:id", gates.Update, h.update)
	r.DELETE("/:id", gates.Delete, h.remove)
}

func (h *MenuHandler) list(c *gin.Context) {
	filter := port.MenuFilter{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit", 10),
		Offset: queryInt(c, "offset", 0),
	}

	menus, total, err := h.menus.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "listing menus failed"))
		return
	}

	items := make([]MenuSummary, 0, len(menus))
	for _, menu := range menus {
		items = append(items, toMenuSummary(menu))
	}

	c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

func (h *MenuHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	menu, err := h.menus.Get(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "menu not found"},
		}, http.StatusInternalServerError, "fetching menu failed")
		return
	}

	c.JSON(http.StatusOK, toMenuSummary(*menu))
}

func (h *MenuHandler) create(c *gin.Context) {
	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.menus.Create(c.Request.Context(), domain.Menu{
		Name:        req.Name,
		Description: req.Description,
		Level1:      req.Level1,
		Level2:      req.Level2,
		Level3:      req.Level3,
		Level4:      req.Level4,
		Icon:        req.Icon,
		URL:         req.URL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "creating menu failed"))
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *MenuHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	err := h.menus.Update(c.Request.Context(), domain.Menu{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Level1:      req.Level1,
		Level2:      req.Level2,
		Level3:      req.Level3,
		Level4:      req.Level4,
		Icon:        req.Icon,
		URL:         req.URL,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "menu not found"},
		}, http.StatusInternalServerError, "updating menu failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "menu updated"})
}

func (h *MenuHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.menus.Delete(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "menu not found"},
		}, http.StatusInternalServerError, "deleting menu failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "menu deleted"})
}
