package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Arriendos-api/internal/application/auth"
	"github.com/jhoicas/Arriendos-api/internal/application/billing"
	"github.com/jhoicas/Arriendos-api/internal/application/orders"
	"github.com/jhoicas/Arriendos-api/internal/application/usecase"
	"github.com/jhoicas/Arriendos-api/pkg/jwt"
	"github.com/jhoicas/Arriendos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	OrdersUC   *orders.UseCase
	MachineUC  *usecase.MachineUseCase
	ClientUC   *usecase.ClientUseCase
	SiteUC     *usecase.SiteUseCase
	RentalUC   *usecase.RentalUseCase
	DocumentUC *usecase.DocumentUseCase
	UserUC     *usecase.UserUseCase
	Render     *billing.RenderUseCase
	Tokens     *jwt.Issuer
	Log        *logger.Logger
	Metrics    requestObserver // nil = sin métricas HTTP
}

// Middlewares base: recover, request id, log de acceso y métricas.
func Middlewares(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/recover", authHandler.Recover)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))

	// Órdenes de trabajo: las vistas de estado van antes de /:id
	ordenes := protected.Group("/ordenes")
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordenes.Post("/", orderHandler.Create)
	ordenes.Get("/", orderHandler.List)
	ordenes.Get("/estado-arriendos", orderHandler.RentalStatus)
	ordenes.Get("/estado-bodega", orderHandler.WarehouseStatus)
	ordenes.Get("/:id", orderHandler.Get)
	ordenes.Post("/:id/emitir", orderHandler.Emit)

	maquinarias := protected.Group("/maquinarias")
	machineHandler := NewMachineHandler(deps.MachineUC)
	maquinarias.Post("/", machineHandler.Create)
	maquinarias.Get("/", machineHandler.List)
	maquinarias.Get("/:id", machineHandler.Get)
	maquinarias.Put("/:id", machineHandler.Update)
	maquinarias.Delete("/:id", machineHandler.Delete)
	maquinarias.Get("/:id/historial", machineHandler.History)

	clientes := protected.Group("/clientes")
	clientHandler := NewClientHandler(deps.ClientUC)
	clientes.Post("/", clientHandler.Create)
	clientes.Get("/", clientHandler.List)
	clientes.Get("/:id", clientHandler.Get)
	clientes.Put("/:id", clientHandler.Update)
	clientes.Delete("/:id", clientHandler.Delete)

	obras := protected.Group("/obras")
	siteHandler := NewSiteHandler(deps.SiteUC)
	obras.Post("/", siteHandler.Create)
	obras.Get("/", siteHandler.List)
	obras.Get("/:id", siteHandler.Get)
	obras.Put("/:id", siteHandler.Update)
	obras.Delete("/:id", siteHandler.Delete)

	arriendos := protected.Group("/arriendos")
	rentalHandler := NewRentalHandler(deps.RentalUC)
	arriendos.Post("/", rentalHandler.Create)
	arriendos.Get("/", rentalHandler.List)
	arriendos.Get("/:id", rentalHandler.Get)
	arriendos.Put("/:id", rentalHandler.Update)
	arriendos.Delete("/:id", rentalHandler.Delete)

	// Documentos (solo lectura; se emiten desde las OT)
	documentos := protected.Group("/documentos")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.Render)
	documentos.Get("/", documentHandler.List)
	documentos.Get("/:id", documentHandler.Get)
	documentos.Get("/:id/pdf", documentHandler.PDF)
	documentos.Get("/:id/xml", documentHandler.XML)

	// Usuarios (staff)
	users := protected.Group("/users", RequireStaff())
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/desbloquear", userHandler.Unlock)
}
