package handler

import (
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	APIToken     *APITokenHandler
	Provider     *ProviderHandler
	VehicleClass *VehicleClassHandler
	Agent        *AgentHandler
	Policy       *PolicyHandler
	Document     *DocumentHandler
	Report       *ReportHandler
	Dashboard    *DashboardHandler
	WebSocket    *WebSocketHandler
}

// Auth bundles the middleware that guards the API
type Auth struct {
	JWT         *middleware.AuthMiddleware
	Dual        *middleware.DualAuthMiddleware
	RateLimiter *middleware.RateLimiter
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, auth Auth, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// The websocket authenticates from the query string
	e.GET("/ws", h.WebSocket.HandleWS)

	api := e.Group("/api/v1")

	// The callback runs before the caller is linked to a user
	authGroup := api.Group("/auth")
	authGroup.POST("/callback", h.Auth.Callback, auth.JWT.IdentityOnly())
	authGroup.GET("/me", h.Auth.Me, auth.Dual.JWTOnly())

	profile := api.Group("/profile", auth.Dual.JWTOnly())
	profile.GET("", h.User.GetProfile)
	profile.PUT("", h.User.UpdateProfile)

	// Admin routes (session only)
	admin := []echo.MiddlewareFunc{auth.Dual.JWTOnly(), middleware.RequireAdmin()}

	users := api.Group("/users", admin...)
	users.GET("", h.User.ListUsers)
	users.POST("", h.User.InviteUser)
	users.PUT("/:id", h.User.UpdateUser)
	users.DELETE("/:id", h.User.DeactivateUser)

	tokens := api.Group("/api-tokens", admin...)
	tokens.GET("", h.APIToken.GetAPITokens)
	tokens.POST("", h.APIToken.CreateAPIToken)
	tokens.DELETE("/:id", h.APIToken.RevokeAPIToken)

	workspace := api.Group("/workspace", admin...)
	workspace.PUT("", h.User.RenameWorkspace)

	// Resource routes accept sessions and API tokens
	protected := []echo.MiddlewareFunc{auth.Dual.Authenticate(), middleware.RateLimitMiddleware(auth.RateLimiter)}

	providers := api.Group("/insurance-providers", protected...)
	providers.GET("", h.Provider.GetProviders)
	providers.POST("", h.Provider.CreateProvider)
	providers.GET("/:id", h.Provider.GetProvider)
	providers.PUT("/:id", h.Provider.UpdateProvider)
	providers.DELETE("/:id", h.Provider.DeleteProvider)
	providers.GET("/:id/transactions", h.Report.ProviderTransactions)
	providers.GET("/:id/transactions/export", h.Report.ExportProviderTransactions)

	vehicleClasses := api.Group("/vehicle-classes", protected...)
	vehicleClasses.GET("", h.VehicleClass.GetVehicleClasses)
	vehicleClasses.POST("", h.VehicleClass.CreateVehicleClass)
	vehicleClasses.GET("/:id", h.VehicleClass.GetVehicleClass)
	vehicleClasses.PUT("/:id", h.VehicleClass.UpdateVehicleClass)
	vehicleClasses.DELETE("/:id", h.VehicleClass.DeleteVehicleClass)
	vehicleClasses.GET("/:id/transactions", h.Report.VehicleClassTransactions)
	vehicleClasses.GET("/:id/transactions/export", h.Report.ExportVehicleClassTransactions)

	agents := api.Group("/agents", protected...)
	agents.GET("", h.Agent.GetAgents)
	agents.POST("", h.Agent.CreateAgent)
	agents.GET("/:id", h.Agent.GetAgent)
	agents.PUT("/:id", h.Agent.UpdateAgent)
	agents.DELETE("/:id", h.Agent.DeleteAgent)
	agents.GET("/:id/commissions", h.Report.AgentCommissions)
	agents.GET("/:id/commissions/export", h.Report.ExportAgentCommissions)

	// Static segments are matched before /:id
	policies := api.Group("/policies", protected...)
	policies.GET("", h.Policy.GetPolicies)
	policies.POST("", h.Policy.CreatePolicy)
	policies.POST("/calculate", h.Policy.Calculate)
	policies.GET("/expiring", h.Policy.GetExpiringPolicies)
	policies.GET("/statistics", h.Policy.GetStatistics)
	policies.GET("/:id", h.Policy.GetPolicy)
	policies.PUT("/:id", h.Policy.UpdatePolicy)
	policies.DELETE("/:id", h.Policy.DeletePolicy)
	policies.GET("/:id/documents", h.Document.ListDocuments)
	policies.POST("/:id/documents", h.Document.UploadDocument)
	policies.DELETE("/:id/documents/:documentId", h.Document.DeleteDocument)

	dashboard := api.Group("/dashboard", protected...)
	dashboard.GET("/summary", h.Dashboard.GetSummary)
}
