// Package app provides service initialization.
package app

import (
	"github.com/conektaolatam-netizen/conektao-sub003/config"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// ServiceComponents holds business service components.
type ServiceComponents struct {
	CostingService service.CostingService
	ProductService service.ProductService
}

// InitializeServices initializes the costing engine and the services around it.
func InitializeServices(cfg config.CostingConfig, dbComponents *DatabaseComponents) *ServiceComponents {
	tables := costing.DefaultTables()
	if cfg.ServiceMarginPercent > 0 {
		tables.ServiceMargin = costing.PercentRange{Min: cfg.ServiceMarginPercent, Max: cfg.ServiceMarginPercent}
	}
	if cfg.SafetyMarginPercent > 0 {
		tables.SafetyMargin = costing.PercentRange{Min: cfg.SafetyMarginPercent, Max: cfg.SafetyMarginPercent}
	}
	engine := costing.NewEngine(costing.WithTables(tables))

	var productService service.ProductService
	if dbComponents != nil && dbComponents.ProductRepo != nil {
		productService = service.NewProductService(dbComponents.ProductRepo)
	}

	opts := []service.CostingOption{
		service.WithSessionStore(cfg.SessionCapacity, cfg.SessionTTL),
	}
	if productService != nil {
		opts = append(opts, service.WithProductService(productService))
	}
	costingService := service.NewCostingService(engine, opts...)

	return &ServiceComponents{
		CostingService: costingService,
		ProductService: productService,
	}
}
