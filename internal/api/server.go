package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/tycoonworld/estate-api/docs"
	v1 "github.com/tycoonworld/estate-api/internal/api/handler/v1"
	"github.com/tycoonworld/estate-api/internal/api/middleware"
	"github.com/tycoonworld/estate-api/internal/config"
	"github.com/tycoonworld/estate-api/internal/repository"
	"github.com/tycoonworld/estate-api/internal/repository/dao"
	"github.com/tycoonworld/estate-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	uSvc := service.NewUserService(userRepo)

	// The bank principal is seeded at startup; trades settle against it.
	bank, err := userRepo.FindByEmail(context.Background(), conf.Seed.BankEmail)
	if err != nil {
		return nil, fmt.Errorf("api.NewServer -> userRepo.FindByEmail(bank) -> %w", err)
	}

	boardRepo := repository.NewBoardRepository(dao.NewBoardDAO(db))
	deedRepo := repository.NewDeedRepository(dao.NewDeedDAO(db))
	buildingRepo := repository.NewBuildingRepository(dao.NewBuildingDAO(db))
	walletRepo := repository.NewWalletRepository(dao.NewWalletDAO(db))
	capabilityRepo := repository.NewCapabilityRepository(dao.NewCapabilityDAO(db))
	bankRepo := repository.NewBankRepository(dao.NewBankDAO(db), dao.NewPriceDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(uSvc)
	boardHandler := v1.NewBoardHandler(service.NewBoardService(boardRepo, capabilityRepo), uSvc)
	deedHandler := v1.NewDeedHandler(service.NewDeedService(deedRepo, boardRepo, capabilityRepo), uSvc)
	buildingHandler := v1.NewBuildingHandler(service.NewBuildingService(buildingRepo, boardRepo, capabilityRepo), uSvc)
	bankHandler := v1.NewBankHandler(service.NewBankService(bankRepo, boardRepo, deedRepo, walletRepo, capabilityRepo, bank.ID), uSvc)
	walletHandler := v1.NewWalletHandler(service.NewWalletService(walletRepo, capabilityRepo), uSvc)
	capabilityHandler := v1.NewCapabilityHandler(service.NewCapabilityService(capabilityRepo), uSvc)
	eventHandler := v1.NewEventHandler(service.NewEventService(eventRepo))

	s.MountHandlers(authHandler, userHandler, boardHandler, deedHandler, buildingHandler, bankHandler, walletHandler, capabilityHandler, eventHandler)

	return s, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	boardHandler *v1.BoardHandler,
	deedHandler *v1.DeedHandler,
	buildingHandler *v1.BuildingHandler,
	bankHandler *v1.BankHandler,
	walletHandler *v1.WalletHandler,
	capabilityHandler *v1.CapabilityHandler,
	eventHandler *v1.EventHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.GET("/board/editions/:edition", boardHandler.HandleGetEdition)
		authenticated.GET("/board/latest", boardHandler.HandleGetLatestEdition)
		authenticated.POST("/board/editions", boardHandler.HandleCreateEdition)

		authenticated.GET("/deeds", deedHandler.HandleListMyDeeds)
		authenticated.GET("/deeds/count", deedHandler.HandleDeedCount)
		authenticated.GET("/deeds/supply", deedHandler.HandleDeedTotalSupply)
		authenticated.GET("/deeds/:assetID", deedHandler.HandleGetDeed)
		authenticated.GET("/deeds/:assetID/exists", deedHandler.HandleDeedExists)
		authenticated.POST("/deeds/mint", deedHandler.HandleMintDeed)
		authenticated.POST("/deeds/:assetID/transfer", deedHandler.HandleTransferDeed)
		authenticated.POST("/deeds/:assetID/approve", deedHandler.HandleApproveDeed)

		authenticated.GET("/buildings/balance", buildingHandler.HandleBuildingBalance)
		authenticated.GET("/buildings/supply", buildingHandler.HandleBuildingSupply)
		authenticated.POST("/buildings/mint", buildingHandler.HandleMintBuilding)
		authenticated.POST("/buildings/transfer", buildingHandler.HandleTransferBuilding)

		authenticated.GET("/bank/prices/deed", bankHandler.HandleGetDeedPrice)
		authenticated.PUT("/bank/prices/deed", bankHandler.HandleSetDeedPrice)
		authenticated.GET("/bank/prices/building", bankHandler.HandleGetBuildingPrice)
		authenticated.PUT("/bank/prices/building", bankHandler.HandleSetBuildingPrice)
		authenticated.POST("/bank/buy/deed", bankHandler.HandleBuyDeed)
		authenticated.POST("/bank/buy/building", bankHandler.HandleBuyBuilding)
		authenticated.POST("/bank/sell/deed", bankHandler.HandleSellDeed)
		authenticated.GET("/bank/reserve", bankHandler.HandleBankReserve)

		authenticated.GET("/wallet/balance", walletHandler.HandleWalletBalance)
		authenticated.GET("/wallet/allowance", walletHandler.HandleWalletAllowance)
		authenticated.GET("/wallet/supply", walletHandler.HandleWalletSupply)
		authenticated.GET("/wallet/paused", walletHandler.HandleWalletPaused)
		authenticated.PUT("/wallet/paused", walletHandler.HandleSetPaused)
		authenticated.POST("/wallet/mint", walletHandler.HandleMintCurrency)
		authenticated.POST("/wallet/burn", walletHandler.HandleBurnCurrency)
		authenticated.POST("/wallet/transfer", walletHandler.HandleTransferCurrency)
		authenticated.POST("/wallet/transfer-from", walletHandler.HandleTransferFrom)
		authenticated.POST("/wallet/approve", walletHandler.HandleApproveCurrency)

		authenticated.POST("/capabilities/grant", capabilityHandler.HandleGrantCapability)
		authenticated.POST("/capabilities/revoke", capabilityHandler.HandleRevokeCapability)
		authenticated.GET("/capabilities/:principalID", capabilityHandler.HandleListCapabilities)

		authenticated.GET("/events", eventHandler.HandleListEvents)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Estate API"
	docs.SwaggerInfo.Description = "Virtual real-estate economy: board editions, land deeds, buildings and the bank."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
