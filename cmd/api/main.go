package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rmacedo/portal-pedidos-api/internal/application/auth"
	"github.com/rmacedo/portal-pedidos-api/internal/application/cart"
	"github.com/rmacedo/portal-pedidos-api/internal/application/orders"
	"github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/application/reports"
	"github.com/rmacedo/portal-pedidos-api/internal/application/usecase"
	inframailer "github.com/rmacedo/portal-pedidos-api/internal/infrastructure/mailer"
	infrapdf "github.com/rmacedo/portal-pedidos-api/internal/infrastructure/pdf"
	"github.com/rmacedo/portal-pedidos-api/internal/infrastructure/postgres"
	infraredis "github.com/rmacedo/portal-pedidos-api/internal/infrastructure/redis"
	"github.com/rmacedo/portal-pedidos-api/internal/infrastructure/storage"
	httpRouter "github.com/rmacedo/portal-pedidos-api/internal/interfaces/http"
	"github.com/rmacedo/portal-pedidos-api/pkg/config"
	"github.com/rmacedo/portal-pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao Redis")
	}
	defer redisClient.Close()

	profileRepo := postgres.NewProfileRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceTableRepo := postgres.NewPriceTableRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	imageStore, err := storage.NewLocalStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("armazenamento de imagens")
	}

	authUC := auth.NewAuthUseCase(profileRepo, clientRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(profileRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	productUC := usecase.NewProductUseCase(productRepo, imageStore)
	priceTableUC := pricing.NewPriceTableUseCase(priceTableRepo, productRepo, clientRepo, txRunner, nil)
	catalogUC := pricing.NewCatalogUseCase(priceTableRepo, productRepo, nil)

	cartStore := infraredis.NewCartStore(redisClient)
	cartUC := cart.NewUseCase(cartStore, catalogUC, nil)

	mailerSvc := inframailer.New(cfg.SMTP)
	orderUC := orders.NewUseCase(orderRepo, clientRepo, profileRepo, cartUC, catalogUC, txRunner, mailerSvc, nil)

	pdfGenerator := infrapdf.NewGenerator()
	reportUC := reports.NewUseCase(reportRepo, pdfGenerator, cfg.Report.MaxOrders, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Portal de Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Imagens de produto servidas direto do disco quando a URL pública é um
	// caminho local (atrás de CDN isso fica no proxy).
	if strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		app.Static(cfg.Storage.PublicURL, cfg.Storage.Dir)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ClientUC:     clientUC,
		ProductUC:    productUC,
		PriceTableUC: priceTableUC,
		CatalogUC:    catalogUC,
		CartUC:       cartUC,
		OrderUC:      orderUC,
		ReportUC:     reportUC,
		OrderPDF:     pdfGenerator,
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

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
