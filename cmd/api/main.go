package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pampazon/wms-api/internal/application/auth"
	appdespacho "github.com/pampazon/wms-api/internal/application/despacho"
	"github.com/pampazon/wms-api/internal/application/egreso"
	"github.com/pampazon/wms-api/internal/application/ingreso"
	"github.com/pampazon/wms-api/internal/application/usecase"
	"github.com/pampazon/wms-api/internal/infrastructure/postgres"
	httpRouter "github.com/pampazon/wms-api/internal/interfaces/http"
	"github.com/pampazon/wms-api/pkg/config"
	"github.com/pampazon/wms-api/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clienteRepo := postgres.NewClienteRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	posicionRepo := postgres.NewPosicionRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	remitoRepo := postgres.NewRemitoRepository(pool)
	ordenRepo := postgres.NewOrdenRepository(pool)
	despachoRepo := postgres.NewDespachoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clienteUC := usecase.NewClienteUseCase(clienteRepo, txRunner)
	productoUC := usecase.NewProductoUseCase(productoRepo, txRunner)
	posicionUC := usecase.NewPosicionUseCase(posicionRepo, clienteRepo, txRunner)
	stockUC := usecase.NewStockUseCase(stockRepo, productoRepo, posicionRepo, txRunner)
	ingresoUC := ingreso.NewUseCase(remitoRepo, clienteRepo, productoRepo, txRunner, cfg.Almacen.PermitirExcedente)
	egresoUC := egreso.NewUseCase(ordenRepo, clienteRepo, productoRepo, txRunner)
	despachoUC := appdespacho.NewUseCase(despachoRepo, ordenRepo, txRunner)
	authUC := auth.NewUseCase(userRepo, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClienteUC:  clienteUC,
		ProductoUC: productoUC,
		PosicionUC: posicionUC,
		StockUC:    stockUC,
		IngresoUC:  ingresoUC,
		EgresoUC:   egresoUC,
		DespachoUC: despachoUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
