package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/retailstock/backend/internal/application/reconciliation"
)

// ProductHandler serves the catalog as seen on a given day
type ProductHandler struct {
	BaseHandler
	service *reconciliation.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *reconciliation.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListActive godoc
// @ID           listActiveProducts
// @Summary      List active products
// @Description  Returns the products active on the day, grouped by category
// @Tags         products
// @Produce      json
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success      200 {object} dto.Response{data=[]reconciliation.ProductGroupDTO}
// @Failure      400 {object} dto.Response
// @Router       /products [get]
func (h *ProductHandler) ListActive(c *gin.Context) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	day, err := h.service.ResolveDate(q.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	groups, err := h.service.ActiveProducts(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// ListRecentlyDeleted godoc
// @ID           listRecentlyDeletedProducts
// @Summary      List recently deleted products
// @Description  Returns products deleted within the advisory window before the day, most recent first
// @Tags         products
// @Produce      json
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success      200 {object} dto.Response{data=[]catalog.DeletionAdvisory}
// @Failure      400 {object} dto.Response
// @Router       /products/recently-deleted [get]
func (h *ProductHandler) ListRecentlyDeleted(c *gin.Context) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	day, err := h.service.ResolveDate(q.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	advisories, err := h.service.RecentlyDeleted(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, advisories)
}
