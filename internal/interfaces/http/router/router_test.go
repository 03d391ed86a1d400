package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/retailstock/backend/docs"
	"github.com/retailstock/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	NewRouter(engine).Register(group).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup_MiddlewareAppliesToSubgroups(t *testing.T) {
	engine := gin.New()
	var seen []string
	g := NewDomainGroup("outer", "/outer").Use(func(c *gin.Context) {
		seen = append(seen, c.FullPath())
		c.Next()
	})
	g.Group("inner", "/:id/inner").PUT("", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	g.RegisterRoutes(engine.Group("/api"))

	req := httptest.NewRequest(http.MethodPut, "/api/outer/42/inner", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
	assert.Equal(t, []string{"/api/outer/:id/inner"}, seen)
	assert.Equal(t, "outer", g.Name())
	assert.Equal(t, "/outer", g.Prefix())
}

func TestInventoryRoutes(t *testing.T) {
	routes := InventoryRoutes(&handler.InventoryHandler{}).Routes()
	assert.Equal(t, []Route{
		{Method: http.MethodGet, Path: "/locations"},
		{Method: http.MethodGet, Path: "/locations/:location/inventory"},
		{Method: http.MethodGet, Path: "/locations/:location/inventory/summary"},
		{Method: http.MethodGet, Path: "/locations/:location/inventory/:product_id"},
		{Method: http.MethodPost, Path: "/locations/:location/inventory/:product_id/restock"},
		{Method: http.MethodPut, Path: "/locations/:location/inventory/:product_id/ending"},
		{Method: http.MethodPost, Path: "/locations/:location/inventory/:product_id/settle"},
	}, routes)
}

func TestMount(t *testing.T) {
	engine := gin.New()
	require.NotPanics(t, func() {
		Mount(engine, Handlers{
			Inventory: &handler.InventoryHandler{},
			Products:  &handler.ProductHandler{},
			System:    handler.NewSystemHandler(nil),
		})
	})

	registered := make(map[string]bool)
	for _, info := range engine.Routes() {
		registered[info.Method+" "+info.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /api/v1/locations",
		"GET /api/v1/locations/:location/inventory/summary",
		"PUT /api/v1/locations/:location/inventory/:product_id/ending",
		"GET /api/v1/products",
		"GET /api/v1/products/recently-deleted",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestMountSwagger(t *testing.T) {
	engine := gin.New()
	MountSwagger(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/locations/{location}/inventory/{product_id}/restock")
	assert.Contains(t, w.Body.String(), `"basePath": "/api/v1"`)
}
