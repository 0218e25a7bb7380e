package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, profileHandler *ProfileHandler, avatarHandler *AvatarHandler, transactionHandler *TransactionHandler, loanHandler *LoanHandler, taxHandler *TaxHandler, insuranceHandler *InsuranceHandler, currencyHandler *CurrencyHandler, assetHandler *AssetHandler, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth runs first so the rate limiter can key on the resolved user ID
	protect := func(g *echo.Group) {
		g.Use(authMiddleware.Authenticate())
		if rateLimiter != nil {
			g.Use(middleware.RateLimitMiddleware(rateLimiter))
		}
	}

	// Auth routes (protected)
	auth := api.Group("/auth")
	protect(auth)
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Profile routes (protected)
	profile := api.Group("/profile")
	protect(profile)
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.POST("/avatar", avatarHandler.UploadAvatar)
	profile.DELETE("/avatar", avatarHandler.DeleteAvatar)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	protect(transactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Loan routes (protected)
	loans := api.Group("/loans")
	protect(loans)
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/banks", loanHandler.GetBanks)
	loans.POST("/preview", loanHandler.PreviewLoan)
	loans.DELETE("/:id", loanHandler.DeleteLoan)

	// Tax routes (protected)
	tax := api.Group("/tax")
	protect(tax)
	tax.POST("/calculate", taxHandler.CalculateTax)

	// Insurance routes (protected)
	insurance := api.Group("/insurance")
	protect(insurance)
	insurance.POST("", insuranceHandler.CreatePolicy)
	insurance.GET("", insuranceHandler.GetPolicies)
	insurance.GET("/overview", insuranceHandler.GetOverview)
	insurance.PUT("/:id", insuranceHandler.UpdatePolicy)
	insurance.POST("/:id/pay", insuranceHandler.MarkPaid)
	insurance.DELETE("/:id", insuranceHandler.DeletePolicy)

	// Currency routes (protected)
	currency := api.Group("/currency")
	protect(currency)
	currency.POST("/convert", currencyHandler.Convert)
	currency.GET("/currencies", currencyHandler.GetCurrencies)

	// Asset and liability routes (protected)
	assets := api.Group("/assets")
	protect(assets)
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.GET("/net-worth", assetHandler.GetNetWorth)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	liabilities := api.Group("/liabilities")
	protect(liabilities)
	liabilities.POST("", assetHandler.CreateLiability)
	liabilities.GET("", assetHandler.GetLiabilities)
	liabilities.DELETE("/:id", assetHandler.DeleteLiability)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	protect(dashboard)
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// WebSocket endpoint (token validated in the handler, not the middleware)
	if wsHandler != nil {
		e.GET("/ws", wsHandler.HandleWS)
	}
}
