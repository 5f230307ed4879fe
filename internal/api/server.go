package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"barvid/docs"
	v1 "barvid/internal/api/handler/v1"
	"barvid/internal/api/middleware"
	"barvid/internal/config"
	"barvid/internal/repository"
	"barvid/internal/service"
	"barvid/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, media *storage.MediaStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler()
	productHandler := s.initProductHandler()
	parcelHandler := s.initParcelHandler(media)
	reportHandler := s.initReportHandler()
	s.MountHandlers(authHandler, productHandler, parcelHandler, reportHandler)

	return s
}

func (s *Server) initAuthHandler() *v1.AuthHandler {
	repo := repository.NewUserRepository(s.Config.Store.DataDir)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initProductHandler() *v1.ProductHandler {
	products := repository.NewProductRepository(s.Config.Store.DataDir)
	ledger := repository.NewStockLogRepository(s.Config.Store.DataDir)
	svc := service.NewInventoryService(products, ledger)
	handler := v1.NewProductHandler(svc)

	return handler
}

func (s *Server) initParcelHandler(media *storage.MediaStore) *v1.ParcelHandler {
	products := repository.NewProductRepository(s.Config.Store.DataDir)
	parcels := repository.NewParcelRepository(s.Config.Store.DataDir)
	ledger := repository.NewStockLogRepository(s.Config.Store.DataDir)
	svc := service.NewPackingService(products, parcels, ledger, media)
	handler := v1.NewParcelHandler(svc)

	return handler
}

func (s *Server) initReportHandler() *v1.ReportHandler {
	products := repository.NewProductRepository(s.Config.Store.DataDir)
	ledger := repository.NewStockLogRepository(s.Config.Store.DataDir)
	svc := service.NewReportService(products, ledger)
	handler := v1.NewReportHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, productHandler *v1.ProductHandler, parcelHandler *v1.ParcelHandler, reportHandler *v1.ReportHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/logout", authHandler.HandleLogout)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifySession())
	{
		protected.GET("/products", productHandler.HandleListInventory)
		protected.POST("/products", productHandler.HandleSaveProduct)
		protected.DELETE("/products/:barcode", productHandler.HandleDeleteProduct)
		protected.POST("/stock-in", productHandler.HandleStockIn)
		protected.GET("/items/:barcode", productHandler.HandleCheckItem)
		protected.GET("/inventory", productHandler.HandleListInventory)

		protected.POST("/parcels", parcelHandler.HandleRecordPacking)
		protected.GET("/parcels", parcelHandler.HandleListParcels)
		protected.DELETE("/parcels/:transportBarcode", parcelHandler.HandleDeleteParcel)
		protected.GET("/videos/:filename", parcelHandler.HandleGetVideo)

		protected.GET("/reports/dashboard-summary", reportHandler.HandleDashboardSummary)
		protected.GET("/reports/daily-log", reportHandler.HandleDailyLog)

		protected.POST("/users", authHandler.HandleAddUser)
		protected.POST("/users/change-password", authHandler.HandleChangePassword)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "BarVid API"
	docs.SwaggerInfo.Description = "Warehouse inventory and packing-record API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
