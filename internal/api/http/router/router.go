package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dtroode/kameti-auth/internal/api/http/handler"
	"github.com/dtroode/kameti-auth/internal/api/http/middleware"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// Router wires HTTP handlers and middleware onto an echo instance.
type Router struct {
	authService     handler.AuthService
	accountService  handler.AccountService
	downloadService handler.DownloadService
	tokenService    middleware.TokenService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates new HTTP Router instance.
//
// Parameters:
//   - authService: The OTP-gated authentication service
//   - accountService: The account profile and role service
//   - downloadService: The installer download service
//   - tokenService: Resolves session cookies for protected routes
//   - contextManager: Carries session claims through request contexts
//   - logger: The logger for request logging
func New(
	authService handler.AuthService,
	accountService handler.AccountService,
	downloadService handler.DownloadService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		accountService:  accountService,
		downloadService: downloadService,
		tokenService:    tokenService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register builds the echo instance serving the /api routes.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(r.logger)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	e.Use(echomw.Recover())
	e.Use(logging.Handle)

	api := e.Group("/api")
	r.registerAuthRoutes(api, authenticate)
	r.registerUserRoutes(api, authenticate)
	r.registerDownloadRoutes(api)

	return e
}

func (r *Router) registerAuthRoutes(api *echo.Group, authenticate *middleware.Authenticate) {
	h := handler.NewAuth(r.authService, r.logger)

	g := api.Group("/auth")
	g.POST("/request-otp", h.RequestOTP)
	g.POST("/verify-otp", h.VerifyOTP)
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/reset-password", h.ResetPassword)
	g.POST("/logout", h.Logout, authenticate.Handle)
}

func (r *Router) registerUserRoutes(api *echo.Group, authenticate *middleware.Authenticate) {
	h := handler.NewUser(r.accountService, r.contextManager, r.logger)

	adminOnly := middleware.RequireRole(r.contextManager, model.RoleAdmin)

	g := api.Group("/users", authenticate.Handle)
	g.GET("", h.List, adminOnly)
	g.GET("/profile", h.Profile)
	g.PATCH("/update", h.Update, adminOnly)
	g.GET("/:id", h.Get, adminOnly)
	g.PATCH("/:email/role", h.ChangeRole, adminOnly)
}

func (r *Router) registerDownloadRoutes(api *echo.Group) {
	h := handler.NewDownload(r.downloadService, r.logger)

	api.GET("/downloads/app", h.App)
}
