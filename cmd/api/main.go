package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/infrastructure/audit"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	coordRepo := postgres.NewCoordenadaRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	requestRepo := postgres.NewTransferRequestRepository(pool)
	ruleRepo := postgres.NewBusinessRuleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sink de auditoría: Kafka si hay brokers, si no al log estructurado.
	var auditSink stock.AuditSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		defer func() {
			if err := kafkaSink.Close(); err != nil {
				log.Error().Err(err).Msg("cierre del sink de auditoría")
			}
		}()
		auditSink = kafkaSink
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.AuditTopic).Msg("auditoría hacia Kafka")
	} else {
		auditSink = audit.NewLogSink(log)
		log.Info().Msg("auditoría hacia el log (sin brokers de Kafka)")
	}

	ledgerUC := stock.NewLedgerUseCase(txRunner, movRepo, productRepo, auditSink)
	aggregatorUC := stock.NewAggregatorUseCase(coordRepo)
	adjustmentUC := stock.NewAdjustmentUseCase(txRunner, coordRepo, auditSink)
	transferUC := stock.NewTransferUseCase(txRunner, coordRepo, requestRepo, auditSink)
	receivingUC := stock.NewReceivingUseCase(txRunner, productRepo, warehouseRepo, orderRepo, auditSink)
	rulesUC := stock.NewRulesUseCase(ruleRepo, productRepo, warehouseRepo, aggregatorUC)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	coordenadaUC := usecase.NewCoordenadaUseCase(coordRepo, productRepo, warehouseRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:  warehouseUC,
		ProductUC:    productUC,
		CoordenadaUC: coordenadaUC,
		LedgerUC:     ledgerUC,
		AggregatorUC: aggregatorUC,
		AdjustmentUC: adjustmentUC,
		TransferUC:   transferUC,
		ReceivingUC:  receivingUC,
		RulesUC:      rulesUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
