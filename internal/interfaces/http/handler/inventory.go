package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/application/reconciliation"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/retailstock/backend/internal/infrastructure/logger"
)

// InventoryHandler serves the daily reconciliation of a location
type InventoryHandler struct {
	BaseHandler
	service *reconciliation.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *reconciliation.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// ListLocations godoc
// @ID           listLocations
// @Summary      List locations
// @Description  Returns the configured store locations
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response{data=[]reconciliation.LocationDTO}
// @Router       /locations [get]
func (h *InventoryHandler) ListLocations(c *gin.Context) {
	h.Success(c, h.service.Locations())
}

// GetDailyView godoc
// @ID           getDailyView
// @Summary      Open the daily view
// @Description  Opens the day for every active product at the location and returns the records grouped by category
// @Tags         inventory
// @Produce      json
// @Param        location path string true "Location code"
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success      200 {object} dto.Response{data=reconciliation.DailyViewDTO}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /locations/{location}/inventory [get]
func (h *InventoryHandler) GetDailyView(c *gin.Context) {
	var uri LocationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return
	}
	day, ok := h.bindDate(c)
	if !ok {
		return
	}

	ctx := logger.WithLocation(c.Request.Context(), uri.Location)
	view, err := h.service.OpenDay(ctx, uri.Location, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// GetSummary godoc
// @ID           getDailySummary
// @Summary      Get the daily summary
// @Description  Returns the totals, expiry counts and low stock list of the day
// @Tags         inventory
// @Produce      json
// @Param        location path string true "Location code"
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success      200 {object} dto.Response{data=reconciliation.SummaryDTO}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /locations/{location}/inventory/summary [get]
func (h *InventoryHandler) GetSummary(c *gin.Context) {
	var uri LocationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return
	}
	day, ok := h.bindDate(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(logger.WithLocation(c.Request.Context(), uri.Location), uri.Location, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetRecord godoc
// @ID           getDailyRecord
// @Summary      Get a daily record
// @Description  Returns one product's record for the day, opening it when needed
// @Tags         inventory
// @Produce      json
// @Param        location path string true "Location code"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success      200 {object} dto.Response{data=reconciliation.RecordDTO}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /locations/{location}/inventory/{product_id} [get]
func (h *InventoryHandler) GetRecord(c *gin.Context) {
	uri, productID, day, ok := h.bindRecord(c)
	if !ok {
		return
	}
	record, err := h.service.GetRecord(logger.WithLocation(c.Request.Context(), uri.Location), uri.Location, productID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Restock godoc
// @ID           restockProduct
// @Summary      Restock a product
// @Description  Adds a batch received during the day
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        location path string true "Location code"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Param        request body RestockRequest true "Request body"
// @Success      201 {object} dto.Response{data=reconciliation.RecordDTO}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /locations/{location}/inventory/{product_id}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	uri, productID, day, ok := h.bindRecord(c)
	if !ok {
		return
	}
	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.service.Restock(logger.WithLocation(c.Request.Context(), uri.Location), reconciliation.RestockInput{
		Location:   uri.Location,
		ProductID:  productID,
		Date:       day,
		Quantity:   req.Quantity,
		ExpiryDate: parseOptionalDay(req.ExpiryDate),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// EditEnding godoc
// @ID           editEndingQuantity
// @Summary      Edit the ending quantity
// @Description  Replaces the ending ledger with the counted batches; batches left out are sold out
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        location path string true "Location code"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Param        request body EditEndingRequest true "Request body"
// @Success      200 {object} dto.Response{data=reconciliation.RecordDTO}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /locations/{location}/inventory/{product_id}/ending [put]
func (h *InventoryHandler) EditEnding(c *gin.Context) {
	uri, productID, day, ok := h.bindRecord(c)
	if !ok {
		return
	}
	var req EditEndingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	edits := make([]stock.BatchEdit, 0, len(req.Batches))
	for _, b := range req.Batches {
		edits = append(edits, stock.BatchEdit{
			ID:         b.ID,
			Remaining:  b.Remaining,
			ExpiryDate: parseOptionalDay(b.ExpiryDate),
		})
	}

	record, err := h.service.EditEnding(logger.WithLocation(c.Request.Context(), uri.Location), reconciliation.EditInput{
		Location:  uri.Location,
		ProductID: productID,
		Date:      day,
		Batches:   edits,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Settle godoc
// @ID           settleDailyRecord
// @Summary      Settle a daily record
// @Description  Validates and closes the day's record
// @Tags         inventory
// @Produce      json
// @Param        location path string true "Location code"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success      200 {object} dto.Response{data=reconciliation.RecordDTO}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /locations/{location}/inventory/{product_id}/settle [post]
func (h *InventoryHandler) Settle(c *gin.Context) {
	uri, productID, day, ok := h.bindRecord(c)
	if !ok {
		return
	}
	record, err := h.service.Settle(logger.WithLocation(c.Request.Context(), uri.Location), uri.Location, productID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

func (h *InventoryHandler) bindDate(c *gin.Context) (time.Time, bool) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return time.Time{}, false
	}
	day, err := h.service.ResolveDate(q.Date)
	if err != nil {
		h.HandleError(c, err)
		return time.Time{}, false
	}
	return day, true
}

func (h *InventoryHandler) bindRecord(c *gin.Context) (RecordURI, uuid.UUID, time.Time, bool) {
	var uri RecordURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindError(c, err)
		return uri, uuid.Nil, time.Time{}, false
	}
	day, ok := h.bindDate(c)
	if !ok {
		return uri, uuid.Nil, time.Time{}, false
	}
	// the uuid binding tag already accepted it
	return uri, uuid.MustParse(uri.ProductID), day, true
}

// parseOptionalDay parses a validated YYYY-MM-DD value; empty yields the zero time
func parseOptionalDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	day, err := shared.ParseDay(s)
	if err != nil {
		return time.Time{}
	}
	return day
}
