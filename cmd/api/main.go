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

	"github.com/agrofiscal/mapa-api/internal/application/admin"
	"github.com/agrofiscal/mapa-api/internal/application/auth"
	"github.com/agrofiscal/mapa-api/internal/application/catalog"
	"github.com/agrofiscal/mapa-api/internal/application/report"
	"github.com/agrofiscal/mapa-api/internal/application/upload"
	infraexcel "github.com/agrofiscal/mapa-api/internal/infrastructure/excel"
	infrapdf "github.com/agrofiscal/mapa-api/internal/infrastructure/pdf"
	"github.com/agrofiscal/mapa-api/internal/infrastructure/postgres"
	"github.com/agrofiscal/mapa-api/internal/infrastructure/storage"
	httpRouter "github.com/agrofiscal/mapa-api/internal/interfaces/http"
	"github.com/agrofiscal/mapa-api/pkg/config"
	"github.com/agrofiscal/mapa-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	uploadRepo := postgres.NewUploadRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	store, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("diretório de uploads")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	adminUC := admin.NewAdminUseCase(userRepo)
	companyUC := catalog.NewCompanyUseCase(companyRepo)
	productUC := catalog.NewProductUseCase(productRepo, companyRepo)
	uploadUC := upload.NewUploadUseCase(uploadRepo, store, cfg.Upload.MaxSizeBytes(), log)

	// Geradores de saída do relatório trimestral: PDF (maroto) e XLSX (excelize).
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	xlsxGenerator := infraexcel.NewExcelizeReportGenerator()
	reportUC := report.NewReportUseCase(
		uploadRepo, companyRepo, productRepo, reportRepo, userRepo,
		store, pdfGenerator, xlsxGenerator, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxSizeBytes()) + 1024*1024,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroFiscal MAPA API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		AdminUC:   adminUC,
		CompanyUC: companyUC,
		ProductUC: productUC,
		UploadUC:  uploadUC,
		ReportUC:  reportUC,
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

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
