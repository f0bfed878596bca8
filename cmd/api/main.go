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
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/auth"
	"github.com/jhoicas/DropZone-api/internal/application/drop"
	"github.com/jhoicas/DropZone-api/internal/application/usecase"
	inframetrics "github.com/jhoicas/DropZone-api/internal/infrastructure/metrics"
	infrapayment "github.com/jhoicas/DropZone-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/DropZone-api/internal/infrastructure/pdf"
	"github.com/jhoicas/DropZone-api/internal/infrastructure/postgres"
	"github.com/jhoicas/DropZone-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/DropZone-api/internal/interfaces/http"
	"github.com/jhoicas/DropZone-api/pkg/config"
	"github.com/jhoicas/DropZone-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	listRepo := postgres.NewSupplierListRepository(pool)
	pointRepo := postgres.NewPickupPointRepository(pool)
	dropRepo := postgres.NewDropRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	metrics := inframetrics.New(true)

	// Pasarela de pagos: por ahora solo el gateway simulado en memoria.
	if cfg.Payments.Mode != "simulated" {
		log.Fatal().Str("mode", cfg.Payments.Mode).Msg("PAYMENTS_MODE no soportado")
	}
	simulated := infrapayment.NewSimulatedGateway(
		decimal.NewFromFloat(cfg.Payments.SimMaxAmount),
		log.Zerolog(),
	)
	payments := infrapayment.NewRetryingGateway(
		simulated,
		infrapayment.DefaultRetryConfig(cfg.Payments.MaxRetries),
		log.Zerolog(),
	)

	authUC := auth.NewAuthUseCase(userRepo, supplierRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	listUC := usecase.NewSupplierListUseCase(listRepo, supplierRepo, productRepo)
	pointUC := usecase.NewPickupPointUseCase(pointRepo)

	dropUC := drop.NewDropUseCase(txRunner, dropRepo, listRepo, pointRepo, productRepo, reservationRepo)
	reserveUC := drop.NewReserveUseCase(
		txRunner, dropRepo, listRepo, reservationRepo,
		payments, metrics, log.Component("reserve"),
	)
	closeUC := drop.NewCloseUseCase(
		txRunner, dropRepo, listRepo, reservationRepo,
		payments, metrics, log.Component("close"),
	)

	// PDF: comprobante de la reserva liquidada
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.Receipt.Locale, cfg.Receipt.Currency)
	receiptUC := drop.NewReceiptUseCase(
		reservationRepo, dropRepo, listRepo, supplierRepo, productRepo, pointRepo, userRepo, receiptGen,
	)

	var closeScheduler *scheduler.CloseScheduler
	if cfg.Scheduler.Enabled {
		closeScheduler, err = scheduler.NewCloseScheduler(cfg.Scheduler.CloseSpec, closeUC, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler de cierre")
		}
		closeScheduler.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Drop Zone API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		SupplierUC:     supplierUC,
		ProductUC:      productUC,
		SupplierListUC: listUC,
		PickupPointUC:  pointUC,
		Drops:          dropUC,
		Settler:        closeUC,
		Reservations:   reserveUC,
		Receipts:       receiptUC,
		ReserveLimiter: httpRouter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log.Component("ratelimit")),
		JWTSecret:      cfg.JWT.Secret,
	})

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

	if closeScheduler != nil {
		closeScheduler.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
