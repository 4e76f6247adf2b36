package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vipcleaners/pos-api/internal/application/auth"
	"github.com/vipcleaners/pos-api/internal/application/orders"
	"github.com/vipcleaners/pos-api/internal/application/usecase"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ClientUC  *usecase.ClientUseCase
	ServiceUC *usecase.ServiceUseCase
	BookingUC *usecase.BookingUseCase
	OrderUC   *orders.OrderUseCase
	Storage   storageService
	Labels    labelService
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staff := RequireRole(entity.RoleAdmin, entity.RoleEmpleado)
	adminOnly := RequireRole(entity.RoleAdmin)

	authHandler := NewAuthHandler(deps.AuthUC)
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	bookingHandler := NewBookingHandler(deps.BookingUC)

	// Público: login, catálogo activo y reservas del sitio web
	api.Post("/auth/login", authHandler.Login)
	public := api.Group("/public")
	public.Get("/services", serviceHandler.List)
	public.Post("/bookings", bookingHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), staff)

	protected.Post("/auth/register", adminOnly, authHandler.Register)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/auth/me", userHandler.Me)

	// Empleados (solo admin)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Patch("/:id/status", userHandler.SetStatus)

	// Clientes
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)

	// Catálogo (escrituras solo admin)
	services := protected.Group("/services")
	services.Get("/", serviceHandler.List)
	services.Post("/", adminOnly, serviceHandler.Create)
	services.Put("/:id", adminOnly, serviceHandler.Update)

	// Órdenes
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", orderHandler.ChangeStatus)

	// Ubicaciones de almacenamiento
	RegisterStorageRoutes(protected.Group("/storage"), NewStorageHandler(deps.Storage, deps.Labels))

	// Reservas (gestión interna)
	bookings := protected.Group("/bookings")
	bookings.Get("/", bookingHandler.List)
	bookings.Patch("/:id/status", adminOnly, bookingHandler.UpdateStatus)
}

// RegisterStorageRoutes monta las rutas de ubicaciones sobre el grupo dado.
func RegisterStorageRoutes(r fiber.Router, h *StorageHandler) {
	r.Post("/generate-code", h.GenerateCode)
	r.Post("/validate-code", h.ValidateCode)
	r.Get("/locations", h.ListLocations)
	r.Get("/labels", h.Labels)
	r.Get("/items/:itemId", h.GetItem)
	r.Put("/items/:itemId/location", h.Assign)
}
