package handlers

import (
	"number_generator/internal/logger"
	"number_generator/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(mustParseTemplates())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Browser page; it obtains a guest token itself
	router.GET("/", h.index)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/guest", h.guest)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerWidgetRoutes(api)
		h.registerLogRoutes(api)
		api.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) registerWidgetRoutes(api *gin.RouterGroup) {
	w := api.Group("/widget")
	{
		w.GET("/state", h.getState)
		w.POST("/generate", h.generate)
		w.POST("/clear", h.clear)
		// Body example: {"min":1,"max":10,"count":5,"filter":"even"}
		w.PUT("/params", h.setParams)
		w.PUT("/theme", h.setTheme)
		w.POST("/theme/toggle", h.toggleTheme)
		w.PUT("/auto", h.setAutoGenerate)
		w.GET("/view", h.view)
		w.GET("/chart", h.chartHTML)
		w.GET("/chart.png", h.chartPNG)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
		logs.GET("/", h.getLogs)
	}
}
