package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
	"github.com/chanwihad/DashboardAppApi/internal/usecase"
)

// ProductHandler exposes the product CRUD endpoints.
type ProductHandler struct {
	products *usecase.ProductService
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(products *usecase.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes binds product CRUD routes, guarding each verb with its
// matching gate middleware.
func (h *ProductHandler) RegisterRoutes(r *gin.RouterGroup, gates CRUDGates) {
	r.GET("", gates.View, h.list)
	r.GET("/:id", gates.View, h.get)
	r.POST("", gates.Create, h.create)
	r.PUT("/:id", gates.Update, h.update)
	r.DELETE("/:id", gates.Delete, h.remove)
}

func (h *ProductHandler) list(c *gin.Context) {
	filter := port.ProductFilter{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit", 10),
		Offset: queryInt(c, "offset", 0),
	}

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "listing products failed"))
		return
	}

	items := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		items = append(items, toProductSummary(product))
	}

	c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

func (h *ProductHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "product not found"},
		}, http.StatusInternalServerError, "fetching product failed")
		return
	}

	c.JSON(http.StatusOK, toProductSummary(*product))
}

func (h *ProductHandler) create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.products.Create(c.Request.Context(), domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "creating product failed"))
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *ProductHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	err := h.products.Update(c.Request.Context(), domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "product not found"},
		}, http.StatusInternalServerError, "updating product failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "product updated"})
}

func (h *ProductHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "product not found"},
		}, http.StatusInternalServerError, "deleting product failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "product deleted"})
}
