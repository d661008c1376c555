package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/auth"
	"github.com/rmacedo/portal-pedidos-api/internal/application/cart"
	"github.com/rmacedo/portal-pedidos-api/internal/application/orders"
	"github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/application/reports"
	"github.com/rmacedo/portal-pedidos-api/internal/application/usecase"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ClientUC     *usecase.ClientUseCase
	ProductUC    *usecase.ProductUseCase
	PriceTableUC *pricing.PriceTableUseCase
	CatalogUC    *pricing.CatalogUseCase
	CartUC       *cart.UseCase
	OrderUC      *orders.UseCase
	ReportUC     *reports.UseCase
	OrderPDF     OrderPDF
	JWTSecret    string
}

// Router registra as rotas da API com os gates de papel por grupo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	adminVendedor := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	clienteOnly := RequireRole(entity.RoleCliente)

	// Auth: login público; o restante exige token
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)
	authGroup.Put("/password", AuthMiddleware(deps.JWTSecret), authHandler.UpdatePassword)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Clients (leitura admin+vendedor, escrita admin)
	clients := protected.Group("/clients", adminVendedor)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", adminOnly, clientHandler.Create)
	clients.Put("/:id", adminOnly, clientHandler.Update)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)
	clients.Post("/:id/deactivate", adminOnly, clientHandler.Deactivate)

	// Products (leitura autenticada, escrita admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Post("/:id/image", adminOnly, productHandler.UploadImage)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Price tables (admin+vendedor)
	tables := protected.Group("/price-tables", adminVendedor)
	tableHandler := NewPriceTableHandler(deps.PriceTableUC)
	tables.Post("/", tableHandler.Create)
	tables.Get("/", tableHandler.List)
	tables.Post("/discount-preview", tableHandler.PreviewDiscount)
	tables.Get("/client/:clientID", tableHandler.ListByClient)
	tables.Put("/items/:itemID", tableHandler.UpdateItem)
	tables.Delete("/items/:itemID", tableHandler.DeleteItem)
	tables.Get("/:id", tableHandler.GetByID)
	tables.Put("/:id", tableHandler.Update)
	tables.Delete("/:id", tableHandler.Delete)
	tables.Post("/:id/activate", tableHandler.Activate)
	tables.Post("/:id/deactivate", tableHandler.Deactivate)
	tables.Post("/:id/items", tableHandler.AddItem)
	tables.Get("/:id/items", tableHandler.ListItems)

	// Catalog (cliente)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/catalog", clienteOnly, catalogHandler.Get)

	// Cart (cliente)
	cartGroup := protected.Group("/cart", clienteOnly)
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:productID", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:productID", cartHandler.RemoveItem)

	// Orders (criação cliente; leitura com escopo por papel no caso de uso)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ClientUC, deps.OrderPDF)
	ordersGroup.Post("/", clienteOnly, orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/pdf", orderHandler.PDF)
	ordersGroup.Put("/:id/status", adminVendedor, orderHandler.UpdateStatus)

	// Reports (admin+vendedor)
	reportsGroup := protected.Group("/reports", adminVendedor)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/sales", reportHandler.Summary)
	reportsGroup.Get("/sales/csv", reportHandler.CSV)
	reportsGroup.Get("/sales/pdf", reportHandler.PDF)
	reportsGroup.Get("/sales/orders-pdf", reportHandler.OrdersPDF)
}
