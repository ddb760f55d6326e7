package router

import (
	"gigledger/internal/config"
	"gigledger/internal/handler"
	"gigledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SetupRouter wires the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// sign-up and sign-in do not require a token
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", authHandler.GetMe)
	protected.POST("/me/password", authHandler.ChangePassword)

	entryHandler := handler.NewEntryHandler(db, cfg.App.PageSize)
	protected.POST("/entries", entryHandler.CreateEntry)
	protected.GET("/entries", entryHandler.ListEntries)
	protected.PATCH("/entries/:id", entryHandler.UpdateEntry)
	protected.DELETE("/entries/:id", entryHandler.DeleteEntry)
	protected.DELETE("/entries", entryHandler.DeleteAllEntries)

	goalHandler := handler.NewGoalHandler(db)
	protected.POST("/goals", goalHandler.SetGoal)
	protected.PUT("/goals/:timeframe", goalHandler.UpdateGoal)
	protected.GET("/goals/:timeframe", goalHandler.GetGoal)
	protected.DELETE("/goals/:timeframe", goalHandler.DeleteGoal)

	rollupHandler := handler.NewRollupHandler(db)
	protected.GET("/rollup", rollupHandler.GetRollup)

	dashboardHandler := handler.NewDashboardHandler(db, cfg.App.PageSize)
	protected.GET("/dashboard/overview", dashboardHandler.Overview)

	pointsHandler := handler.NewPointsHandler(db)
	protected.GET("/points", pointsHandler.GetUserPoints)
	protected.POST("/points/check-in", pointsHandler.DailyCheckIn)
	protected.GET("/points/rewards", pointsHandler.GetRewards)

	leaderboardHandler := handler.NewLeaderboardHandler(db)
	protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
	protected.POST("/friends", leaderboardHandler.AddFriend)
	protected.DELETE("/friends/:id", leaderboardHandler.RemoveFriend)

	costPerMile, err := decimal.NewFromString(cfg.App.CostPerMileDefault)
	if err != nil {
		costPerMile = decimal.RequireFromString("0.67")
	}
	settingsHandler := handler.NewSettingsHandler(db, costPerMile)
	protected.GET("/settings", settingsHandler.GetSettings)
	protected.PUT("/settings", settingsHandler.UpdateSettings)

	credentialHandler := handler.NewCredentialHandler(db, cfg.Security.EncryptionKey)
	protected.POST("/credentials", credentialHandler.SaveCredential)
	protected.GET("/credentials", credentialHandler.ListCredentials)
	protected.DELETE("/credentials/:platform", credentialHandler.DeleteCredential)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	logHandler := handler.NewLogHandler(db, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
