package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/DropZone-api/internal/application/auth"
	"github.com/jhoicas/DropZone-api/internal/application/usecase"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SupplierUC     *usecase.SupplierUseCase
	ProductUC      *usecase.ProductUseCase
	SupplierListUC *usecase.SupplierListUseCase
	PickupPointUC  *usecase.PickupPointUseCase
	Drops          dropService
	Settler        dropSettler
	Reservations   reservationService
	Receipts       receiptService
	ReserveLimiter *RateLimiter
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleSupplier)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/supplier-users", authMW, adminOnly, authHandler.CreateSupplierUser)

	// Suppliers (admin)
	if deps.SupplierUC != nil {
		supplierHandler := NewSupplierHandler(deps.SupplierUC)
		suppliers := api.Group("/suppliers", authMW, adminOnly)
		suppliers.Post("/", supplierHandler.Create)
		suppliers.Get("/", supplierHandler.List)
		suppliers.Get("/:id", supplierHandler.GetByID)
		suppliers.Put("/:id", supplierHandler.Update)
	}

	// Products (catálogo del proveedor)
	if deps.ProductUC != nil {
		productHandler := NewProductHandler(deps.ProductUC)
		products := api.Group("/products", authMW, managers)
		products.Post("/", productHandler.Create)
		products.Get("/", productHandler.List)
		products.Get("/:id", productHandler.GetByID)
		products.Put("/:id", productHandler.Update)
	}

	// Supplier lists
	if deps.SupplierListUC != nil {
		listHandler := NewSupplierListHandler(deps.SupplierListUC)
		lists := api.Group("/supplier-lists", authMW, managers)
		lists.Post("/", listHandler.Create)
		lists.Get("/", listHandler.List)
		lists.Get("/:id", listHandler.Get)
		lists.Post("/:id/items", listHandler.AddItem)
	}

	// Pickup points: lectura pública
	if deps.PickupPointUC != nil {
		pointHandler := NewPickupPointHandler(deps.PickupPointUC)
		points := api.Group("/pickup-points")
		points.Get("/", pointHandler.List)
		points.Get("/:id", pointHandler.GetByID)
		points.Post("/", authMW, adminOnly, pointHandler.Create)
		points.Put("/:id", authMW, adminOnly, pointHandler.Update)
		api.Get("/admin/pickup-points", authMW, adminOnly, pointHandler.List)
	}

	// Drops: consulta pública, gestión por admin o proveedor dueño
	dropHandler := NewDropHandler(deps.Drops, deps.Settler)
	drops := api.Group("/drops")
	drops.Get("/", dropHandler.List)
	drops.Get("/:id", dropHandler.Get)
	drops.Post("/", authMW, managers, dropHandler.Create)
	drops.Post("/:id/open", authMW, managers, dropHandler.Open)
	drops.Post("/:id/close", authMW, managers, dropHandler.Close)
	drops.Post("/:id/cancel", authMW, managers, dropHandler.Cancel)
	drops.Post("/:id/retry-charges", authMW, adminOnly, dropHandler.RetryCharges)
	drops.Get("/:id/reservations", authMW, managers, dropHandler.ListReservations)

	// Reservas del cliente
	resHandler := NewReservationHandler(deps.Reservations, deps.Receipts)
	reserveChain := []fiber.Handler{authMW, RequireRole(entity.RoleCustomer)}
	if deps.ReserveLimiter != nil {
		reserveChain = append(reserveChain, deps.ReserveLimiter.Handler())
	}
	reserveChain = append(reserveChain, resHandler.Reserve)
	drops.Post("/:id/reservations", reserveChain...)

	api.Get("/me/reservations", authMW, resHandler.ListMine)
	api.Get("/reservations/:id/receipt", authMW, resHandler.Receipt)
}
