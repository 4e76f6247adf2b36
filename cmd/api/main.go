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
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/vipcleaners/pos-api/docs"
	"github.com/vipcleaners/pos-api/internal/application/auth"
	"github.com/vipcleaners/pos-api/internal/application/orders"
	"github.com/vipcleaners/pos-api/internal/application/ports"
	"github.com/vipcleaners/pos-api/internal/application/storage"
	"github.com/vipcleaners/pos-api/internal/application/usecase"
	"github.com/vipcleaners/pos-api/internal/infrastructure/metrics"
	infrapdf "github.com/vipcleaners/pos-api/internal/infrastructure/pdf"
	"github.com/vipcleaners/pos-api/internal/infrastructure/postgres"
	"github.com/vipcleaners/pos-api/internal/infrastructure/rabbitmq"
	httpRouter "github.com/vipcleaners/pos-api/internal/interfaces/http"
	"github.com/vipcleaners/pos-api/pkg/config"
	"github.com/vipcleaners/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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
	clientRepo := postgres.NewClientRepository(pool)
	serviceRepo := postgres.NewCleaningServiceRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	slotRepo := postgres.NewStorageSlotRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones: RabbitMQ si hay broker configurado; si no, solo log.
	var notifier ports.Notifier = rabbitmq.NewLogNotifier(log.Named("notifications"))
	if cfg.Broker.URL != "" {
		conn, err := rabbitmq.Connect(cfg.Broker.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		publisher, err := rabbitmq.NewPublisher(conn, cfg.Broker.Exchange, log.Named("notifications"))
		if err != nil {
			log.Fatal().Err(err).Msg("declarar exchange de notificaciones")
		}
		notifier = publisher
	}

	storageDeps := storage.ServiceDeps{
		Slots:       slotRepo,
		Tx:          txRunner,
		Log:         log.Named("storage"),
		LockTimeout: time.Duration(cfg.Storage.LockTimeoutSeconds) * time.Second,
	}
	if cfg.Storage.CodeFunction != "" {
		auto, err := postgres.NewAutoCodeFunction(pool, cfg.Storage.CodeFunction)
		if err != nil {
			log.Fatal().Err(err).Str("function", cfg.Storage.CodeFunction).Msg("función de códigos inválida")
		}
		storageDeps.Auto = auto
	}
	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
		storageDeps.Recorder = recorder
	}
	storageSvc := storage.NewService(storageDeps)
	labelUC := storage.NewLabelUseCase(storageSvc, infrapdf.NewMarotoLabelGenerator())

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orderUC := orders.NewOrderUseCase(txRunner, orderRepo, slotRepo, clientRepo, serviceRepo, notifier, log.Named("orders"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "VIP Cleaners API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if recorder != nil {
		app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    usecase.NewUserUseCase(userRepo),
		ClientUC:  usecase.NewClientUseCase(clientRepo),
		ServiceUC: usecase.NewServiceUseCase(serviceRepo),
		BookingUC: usecase.NewBookingUseCase(bookingRepo, serviceRepo, notifier, log.Named("bookings")),
		OrderUC:   orderUC,
		Storage:   storageSvc,
		Labels:    labelUC,
		JWTSecret: cfg.JWT.Secret,
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

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
