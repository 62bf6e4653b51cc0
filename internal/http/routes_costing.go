package http

import (
	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// CostingRoutes handles costing and product route registration.
type CostingRoutes struct {
	handler         *Handler
	productsHandler *ProductsHandler
}

// NewCostingRoutes creates a new CostingRoutes instance.
func NewCostingRoutes(costingService service.CostingService, productService service.ProductService) *CostingRoutes {
	r := &CostingRoutes{
		handler: NewHandler(costingService),
	}
	if productService != nil {
		r.productsHandler = NewProductsHandler(productService)
	}
	return r
}

// RegisterPublicRoutes registers costing routes without authentication.
func (r *CostingRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	r.register(rg)
}

// RegisterProtectedRoutes registers costing routes behind JWT authentication.
func (r *CostingRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	r.register(rg)
}

func (r *CostingRoutes) register(rg *gin.RouterGroup) {
	sessions := rg.Group("/costing/sessions")
	{
		sessions.POST("", r.handler.StartSession)
		sessions.GET("/:id", r.handler.GetSession)
		sessions.POST("/:id/steps", r.handler.Step)
		sessions.GET("/:id/result", r.handler.Finalize)
		sessions.POST("/:id/accept", r.handler.Accept)
		sessions.DELETE("/:id", r.handler.Abandon)
	}

	if r.productsHandler != nil {
		products := rg.Group("/products")
		{
			products.GET("", r.productsHandler.List)
			products.GET("/:name", r.productsHandler.GetByName)
			products.DELETE("/:id", r.productsHandler.Delete)
		}
	}
}

// GetHandler returns the underlying costing handler.
func (r *CostingRoutes) GetHandler() *Handler {
	return r.handler
}
