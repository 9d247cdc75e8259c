// @title                       Arriendos API
// @version                     1.0
// @description                 Back office de arriendo de maquinaria: órdenes de trabajo, guías, facturas y estado de equipos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Arriendos-api/docs"
	"github.com/jhoicas/Arriendos-api/internal/application/auth"
	"github.com/jhoicas/Arriendos-api/internal/application/billing"
	"github.com/jhoicas/Arriendos-api/internal/application/orders"
	"github.com/jhoicas/Arriendos-api/internal/application/usecase"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/dte"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Arriendos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Arriendos-api/internal/interfaces/http"
	"github.com/jhoicas/Arriendos-api/pkg/config"
	"github.com/jhoicas/Arriendos-api/pkg/jwt"
	"github.com/jhoicas/Arriendos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL (por defecto) o todo en memoria para demos.
	var (
		txRunner orders.TxRunner
		repos    orders.Repos
		users    repository.UserRepository
	)
	switch cfg.App.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		txRunner, repos, users = store, store.Repos(), store.Users()
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), "up"); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos, users = postgres.NewTxRunner(pool), postgres.NewRepos(pool), postgres.NewUserRepository(pool)
	}

	var m *metrics.Metrics
	orderOpts := []orders.Option{orders.WithLogger(log.Named("orders"))}
	if cfg.Metrics.Enabled {
		m = metrics.New()
		orderOpts = append(orderOpts, orders.WithRecorder(m))
	}
	ordersUC := orders.NewUseCase(txRunner, repos, orders.Config{
		HouseName: cfg.House.Name,
		HouseRUT:  cfg.House.RUT,
		IVARate:   cfg.House.IVARate,
	}, orderOpts...)

	tokens := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)
	authUC := auth.NewUseCase(users, tokens, log.Named("auth"))
	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}

	// PDF y XML de los documentos emitidos; el emisor es la cuenta de la casa.
	renderUC := billing.NewRenderUseCase(billing.Repos{
		Documents:  repos.Documents,
		Clients:    repos.Clients,
		Rentals:    repos.Rentals,
		Machines:   repos.Machines,
		Sites:      repos.Sites,
		WorkOrders: repos.WorkOrders,
	}, billing.Issuer{Name: cfg.House.Name, RUT: cfg.House.RUT}, infrapdf.NewMarotoRenderer(), dte.NewBuilder())

	deps := httpRouter.RouterDeps{
		AuthUC:     authUC,
		OrdersUC:   ordersUC,
		MachineUC:  usecase.NewMachineUseCase(repos.Machines, repos.Rentals, repos.Sites, repos.Documents),
		ClientUC:   usecase.NewClientUseCase(repos.Clients),
		SiteUC:     usecase.NewSiteUseCase(repos.Sites),
		RentalUC:   usecase.NewRentalUseCase(repos.Rentals, repos.Machines),
		DocumentUC: usecase.NewDocumentUseCase(repos.Documents, repos.Clients),
		UserUC:     usecase.NewUserUseCase(users),
		Render:     renderUC,
		Tokens:     tokens,
		Log:        log.Named("http"),
	}
	if m != nil {
		deps.Metrics = m
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	httpRouter.Middlewares(app, deps)

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Arriendos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.Store})
	})
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
