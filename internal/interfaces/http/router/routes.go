package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retailstock/backend/internal/interfaces/http/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers are the endpoint implementations mounted by Mount
type Handlers struct {
	Inventory *handler.InventoryHandler
	Products  *handler.ProductHandler
	System    *handler.SystemHandler
}

// InventoryRoutes is the per-location reconciliation API
func InventoryRoutes(h *handler.InventoryHandler) *DomainGroup {
	locations := NewDomainGroup("locations", "/locations")
	locations.GET("", h.ListLocations)

	inventory := locations.Group("inventory", "/:location/inventory")
	inventory.GET("", h.GetDailyView)
	inventory.GET("/summary", h.GetSummary)
	inventory.GET("/:product_id", h.GetRecord)
	inventory.POST("/:product_id/restock", h.Restock)
	inventory.PUT("/:product_id/ending", h.EditEnding)
	inventory.POST("/:product_id/settle", h.Settle)
	return locations
}

// ProductRoutes is the read-only catalog API
func ProductRoutes(h *handler.ProductHandler) *DomainGroup {
	products := NewDomainGroup("products", "/products")
	products.GET("", h.ListActive)
	products.GET("/recently-deleted", h.ListRecentlyDeleted)
	return products
}

// Mount registers the health check at the root and the API under /api/v1
func Mount(engine *gin.Engine, h Handlers) *Router {
	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}
	r := NewRouter(engine)
	r.Register(InventoryRoutes(h.Inventory), ProductRoutes(h.Products))
	r.Setup()
	return r
}

// MountSwagger serves the generated API docs under /swagger
func MountSwagger(engine *gin.Engine) {
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
