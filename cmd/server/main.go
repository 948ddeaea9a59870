package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	activityapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/activity/api"
	activityrepo "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/activity/repository"
	activitysvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/activity/service"
	alertapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/api"
	alertrepo "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/repository"
	alertsvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/service"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	dashboardapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/dashboard/api"
	dashboardrepo "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/dashboard/repository"
	dashboardsvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/dashboard/service"
	labelapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/label/api"
	labelsvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/label/service"
	lotapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/api"
	lotrepo "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository"
	lotsvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/service"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/config"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/database"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	productapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/api"
	productrepo "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/repository"
	productsvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/service"
	reportapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/api"
	reportrepo "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/repository"
	reportsvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/service"
	userapi "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/api"
	userrepo "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/repository"
	usersvc "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/service"
)

func main() {
	logger.Info("Starting Mexhi Coffee Manager server...")

	dbCfg := config.LoadDBConfig()
	serverCfg := config.LoadServerConfig("8080")
	alertCfg := config.LoadAlertConfig()
	authCfg := config.LoadAuthConfig()

	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Fatal("Could not connect to database", err)
	}
	defer db.Close()

	tokens := auth.NewTokenManager(authCfg.JWTSecret, authCfg.TokenTTLHours)

	activityService := activitysvc.NewActivityService(activityrepo.NewPostgresActivityRepository(db))

	alertRepo := alertrepo.NewPostgresAlertRepository(db)
	alertService := alertsvc.NewAlertService(alertRepo, alertsvc.Options{
		ExpiryWindowDays: alertCfg.ExpiryWindowDays,
		HighPriorityDays: alertCfg.HighPriorityDays,
	})

	productRepo := productrepo.NewPostgresProductRepository(db)
	productService := productsvc.NewProductService(productRepo, activityService)

	lotRepo := lotrepo.NewPostgresLotRepository(db)
	lotService := lotsvc.NewLotService(lotRepo, activityService)

	userService := usersvc.NewUserService(userrepo.NewPostgresUserRepository(db), tokens, activityService)

	dashboardService := dashboardsvc.NewDashboardService(dashboardrepo.NewPostgresDashboardRepository(db))

	reportService := reportsvc.NewReportService(
		reportrepo.NewPostgresReportRepository(db), lotRepo, productRepo, alertRepo,
	)

	labelService := labelsvc.NewLabelService(lotRepo, activityService)

	alertHandler := alertapi.NewAlertHandler(alertService)
	productHandler := productapi.NewProductHandler(productService)
	lotHandler := lotapi.NewLotHandler(lotService)
	userHandler := userapi.NewUserHandler(userService, tokens)
	dashboardHandler := dashboardapi.NewDashboardHandler(dashboardService)
	reportHandler := reportapi.NewReportHandler(reportService)
	labelHandler := labelapi.NewLabelHandler(labelService)
	activityHandler := activityapi.NewActivityHandler(activityService)

	router := gin.Default()

	apiRoutes := router.Group("/api")
	apiRoutes.GET("/health", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			logger.Error("Health check: database unreachable", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Base de datos no disponible"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok", "timestamp": time.Now().UTC()})
	})
	userHandler.RegisterAuthRoutes(apiRoutes)

	protected := apiRoutes.Group("")
	protected.Use(auth.Middleware(tokens))
	{
		alertHandler.RegisterRoutes(protected)
		productHandler.RegisterRoutes(protected)
		lotHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
		reportHandler.RegisterRoutes(protected)
		labelHandler.RegisterRoutes(protected)
		activityHandler.RegisterRoutes(protected)

		admin := protected.Group("")
		admin.Use(auth.RequireAdmin())
		userHandler.RegisterUserRoutes(admin)
	}

	if alertCfg.SweepCron != "" {
		sweeper := alertsvc.NewSweeper(alertService, alertCfg.SweepCron, alertCfg.SweepUserID)
		if err := sweeper.Start(); err != nil {
			logger.Fatal("Could not start alert sweeper", err)
		}
		defer sweeper.Stop()
	}

	logger.Info("Server listening on port %s", serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Fatal("Could not start server", err)
	}
}
