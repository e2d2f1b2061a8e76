package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrofiscal/mapa-api/internal/application/admin"
	"github.com/agrofiscal/mapa-api/internal/application/auth"
	"github.com/agrofiscal/mapa-api/internal/application/catalog"
	"github.com/agrofiscal/mapa-api/internal/application/report"
	"github.com/agrofiscal/mapa-api/internal/application/upload"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	AdminUC   *admin.AdminUseCase
	CompanyUC *catalog.CompanyUseCase
	ProductUC *catalog.ProductUseCase
	UploadUC  *upload.UploadUseCase
	ReportUC  *report.ReportUseCase
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	adminHandler := NewAdminHandler(deps.AdminUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/setup-first-admin", adminHandler.SetupFirstAdmin)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Catálogo (protegido)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/catalog", productHandler.Overview)

	companies := protected.Group("/catalog/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Get("/:id/products", productHandler.ListByCompany)

	products := protected.Group("/catalog/products")
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Uploads de NF-e (protegido)
	uploads := protected.Group("/uploads")
	uploadHandler := NewUploadHandler(deps.UploadUC)
	uploads.Post("/", uploadHandler.Upload)
	uploads.Get("/", uploadHandler.List)
	uploads.Get("/:id", uploadHandler.GetByID)
	uploads.Patch("/:id/period", uploadHandler.UpdatePeriod)
	uploads.Delete("/:id", uploadHandler.Delete)

	// Relatórios (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/process", reportHandler.Process)
	reports.Get("/", reportHandler.List)
	reports.Delete("/:id", reportHandler.Delete)
	reports.Get("/:period/pdf", reportHandler.DownloadPDF)
	reports.Get("/:period/xlsx", reportHandler.DownloadXLSX)

	// Administração (protegido, apenas admin)
	adminGroup := protected.Group("/admin", AdminOnly())
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users", adminHandler.CreateUser)
	adminGroup.Get("/users/:id", adminHandler.GetUser)
	adminGroup.Patch("/users/:id", adminHandler.UpdateUser)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)
}
