package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/boardland/boardland-api/docs"
	v1 "github.com/boardland/boardland-api/internal/api/handler/v1"
	"github.com/boardland/boardland-api/internal/api/middleware"
	"github.com/boardland/boardland-api/internal/config"
	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/pkg/payment"
	"github.com/boardland/boardland-api/internal/repository"
	"github.com/boardland/boardland-api/internal/repository/dao"
	"github.com/boardland/boardland-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	liveHandler := v1.NewLiveHandler()
	go liveHandler.Run()

	userSvc := s.initUserService(db)
	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	sessionHandler := s.initSessionHandler(db)
	depositHandler := s.initDepositHandler(db, userSvc)
	catalogueHandler := s.initCatalogueHandler(db, userSvc)
	saleHandler := s.initSaleHandler(db, liveHandler)
	payoutHandler := s.initPayoutHandler(db)
	bilanHandler := s.initBilanHandler(db)

	s.MountHandlers(userSvc,
		authHandler, userHandler, sessionHandler, depositHandler,
		catalogueHandler, saleHandler, payoutHandler, bilanHandler, liveHandler)

	return s
}

func (s *Server) initUserService(db *gorm.DB) *service.UserService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)

	return service.NewUserService(repo)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	sessionDAO := dao.NewSessionDAO(db)
	repo := repository.NewSessionRepository(sessionDAO)
	svc := service.NewSessionService(repo)
	handler := v1.NewSessionHandler(svc)

	return handler
}

func (s *Server) initDepositHandler(db *gorm.DB, userSvc *service.UserService) *v1.DepositHandler {
	stockRepo := repository.NewStockRepository(dao.NewStockDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))

	// A typed nil must not end up inside the interface value.
	var charger service.FeeCharger
	if stripeCharger := payment.NewStripeCharger(s.Config.Stripe); stripeCharger != nil {
		charger = stripeCharger
	}

	svc := service.NewDepositService(stockRepo, sessionRepo, charger)
	handler := v1.NewDepositHandler(svc, userSvc, s.Config.API.UploadDir)

	return handler
}

func (s *Server) initCatalogueHandler(db *gorm.DB, userSvc *service.UserService) *v1.CatalogueHandler {
	stockRepo := repository.NewStockRepository(dao.NewStockDAO(db))
	svc := service.NewCatalogueService(stockRepo)
	handler := v1.NewCatalogueHandler(svc, userSvc)

	return handler
}

func (s *Server) initSaleHandler(db *gorm.DB, notifier service.SaleNotifier) *v1.SaleHandler {
	stockRepo := repository.NewStockRepository(dao.NewStockDAO(db))
	svc := service.NewSaleService(stockRepo, notifier)
	handler := v1.NewSaleHandler(svc)

	return handler
}

func (s *Server) initPayoutHandler(db *gorm.DB) *v1.PayoutHandler {
	stockRepo := repository.NewStockRepository(dao.NewStockDAO(db))
	svc := service.NewPayoutService(stockRepo)
	handler := v1.NewPayoutHandler(svc)

	return handler
}

func (s *Server) initBilanHandler(db *gorm.DB) *v1.BilanHandler {
	stockRepo := repository.NewStockRepository(dao.NewStockDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	svc := service.NewBilanService(stockRepo, sessionRepo)
	handler := v1.NewBilanHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(userSvc middleware.UserGetter,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	sessionHandler *v1.SessionHandler,
	depositHandler *v1.DepositHandler,
	catalogueHandler *v1.CatalogueHandler,
	saleHandler *v1.SaleHandler,
	payoutHandler *v1.PayoutHandler,
	bilanHandler *v1.BilanHandler,
	liveHandler *v1.LiveHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	// The public catalogue and session listing run as the guest identity when
	// no token is presented.
	public := s.Router.Group(basePath, authenticator.OptionalJWT(),
		middleware.RequireRole(userSvc, domain.RoleGuest, domain.RoleSeller, domain.RoleManager, domain.RoleAdmin))
	{
		public.GET("/catalogue", catalogueHandler.HandleListCatalogue)
		public.GET("/sessions", sessionHandler.HandleListSessions)
		public.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	sellers := s.Router.Group(basePath, authenticator.VerifyJWT(),
		middleware.RequireRole(userSvc, domain.RoleSeller, domain.RoleManager, domain.RoleAdmin))
	{
		sellers.POST("/deposits", depositHandler.HandleSubmitDeposit)
		sellers.GET("/deposits/quote", depositHandler.HandleQuoteFee)
		sellers.GET("/withdrawals", catalogueHandler.HandleListWithdrawable)
		sellers.POST("/withdrawals", catalogueHandler.HandleWithdraw)
	}

	managers := s.Router.Group(basePath, authenticator.VerifyJWT(),
		middleware.RequireRole(userSvc, domain.RoleManager, domain.RoleAdmin))
	{
		managers.PUT("/stock/:itemID/toggle-sale", catalogueHandler.HandleToggleForSale)
		managers.POST("/purchases", saleHandler.HandleRegisterPurchase)
		managers.GET("/sellers", payoutHandler.HandleListSellers)
		managers.GET("/sellers/:email/sales", payoutHandler.HandleSellerSales)
		managers.POST("/sellers/:email/payout", payoutHandler.HandlePaySeller)
		managers.GET("/reports/bilan", bilanHandler.HandleGetBilan)
		managers.GET("/live/sales", liveHandler.HandleLiveSales)
	}

	admins := s.Router.Group(basePath, authenticator.VerifyJWT(),
		middleware.RequireRole(userSvc, domain.RoleAdmin))
	{
		admins.POST("/sessions", sessionHandler.HandleCreateSession)
		admins.PUT("/sessions", sessionHandler.HandleUpdateSessions)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Boardland API"
	docs.SwaggerInfo.Description = "Board game festival deposit, sale and payout management."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
