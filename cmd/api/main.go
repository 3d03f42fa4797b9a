package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kivo-shop/kivo-api/internal/application/auth"
	"github.com/kivo-shop/kivo-api/internal/application/cart"
	"github.com/kivo-shop/kivo-api/internal/application/catalog"
	"github.com/kivo-shop/kivo-api/internal/application/checkout"
	"github.com/kivo-shop/kivo-api/internal/application/loyalty"
	"github.com/kivo-shop/kivo-api/internal/infrastructure/postgres"
	"github.com/kivo-shop/kivo-api/internal/infrastructure/qr"
	httpRouter "github.com/kivo-shop/kivo-api/internal/interfaces/http"
	"github.com/kivo-shop/kivo-api/pkg/config"
	"github.com/kivo-shop/kivo-api/pkg/logger"
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
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	promotionRepo := postgres.NewPromotionRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	fichaRepo := postgres.NewFichaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo, promotionRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	promotionUC := catalog.NewPromotionUseCase(promotionRepo, productRepo)
	cartUC := cart.NewCartUseCase(cartRepo, productRepo)
	checkoutUC := checkout.NewCheckoutUseCase(txRunner, orderRepo)
	fichaUC := loyalty.NewFichaUseCase(fichaRepo, orderRepo, qr.NewEncoder())

	// Administrador por defecto: siembra idempotente en cada arranque.
	if err := authUC.EnsureDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatal().Err(err).Msg("siembra del administrador por defecto")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "KIVO API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		PromotionUC: promotionUC,
		CartUC:      cartUC,
		CheckoutUC:  checkoutUC,
		FichaUC:     fichaUC,
		JWTSecret:   cfg.JWT.Secret,
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
