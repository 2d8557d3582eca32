package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC  *usecase.WarehouseUseCase
	ProductUC    *usecase.ProductUseCase
	CoordenadaUC *usecase.CoordenadaUseCase
	LedgerUC     *stock.LedgerUseCase
	AggregatorUC *stock.AggregatorUseCase
	AdjustmentUC *stock.AdjustmentUseCase
	TransferUC   *stock.TransferUseCase
	ReceivingUC  *stock.ReceivingUseCase
	RulesUC      *stock.RulesUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Coordenadas (protegido)
	coordenadaHandler := NewCoordenadaHandler(deps.CoordenadaUC)
	protected.Post("/coordenadas", coordenadaHandler.Create)
	warehouses.Get("/:warehouse_id/coordenadas", coordenadaHandler.ListByWarehouse)
	products.Get("/:product_id/coordenadas", coordenadaHandler.ListByProduct)

	// Stock: agregados, ledger, ajustes y ventas (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.AggregatorUC, deps.AdjustmentUC)
	stockGroup.Get("/", stockHandler.GetStock)
	stockGroup.Get("/movements", stockHandler.GetMovements)
	stockGroup.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), stockHandler.Adjust)
	stockGroup.Post("/sales", stockHandler.Sale)

	// Transfers (protegido; la autoridad directa se resuelve por rol en el handler)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	requests := transfers.Group("/requests")
	requests.Get("/pending", transferHandler.ListPending)
	approver := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	requests.Post("/:id/approve", approver, transferHandler.Approve)
	requests.Post("/:id/reject", approver, transferHandler.Reject)
	requests.Post("/:id/complete", approver, transferHandler.Complete)

	// Purchase orders (protegido)
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseHandler(deps.ReceivingUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), purchaseHandler.Receive)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)

	// Business rules (protegido; configurar solo admin)
	rules := protected.Group("/rules")
	rulesHandler := NewRulesHandler(deps.RulesUC)
	rules.Get("/suggestions", rulesHandler.Suggestions)
	rules.Get("/", rulesHandler.List)
	rules.Post("/", RequireRole(entity.RoleAdmin), rulesHandler.Create)
	rules.Delete("/:id", RequireRole(entity.RoleAdmin), rulesHandler.Delete)
}
