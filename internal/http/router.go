package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/editais-backend/internal/http/handlers"
	httpMW "github.com/yungbote/editais-backend/internal/http/middleware"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AdminMiddleware *httpMW.AdminMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	ChatHandler     *httpH.ChatHandler
	CongressHandler *httpH.CongressHandler
	SettingsHandler *httpH.SettingsHandler
	UploadHandler   *httpH.UploadHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Chat
		if cfg.ChatHandler != nil {
			api.POST("/chat", cfg.ChatHandler.Chat)
		}

		// Congresses (public reads for the landing page and widget)
		if cfg.CongressHandler != nil {
			api.GET("/congresses", cfg.CongressHandler.List)
			api.GET("/congresses/slug/:slug", cfg.CongressHandler.GetBySlug)
		}
	}

	admin := api.Group("/")
	{
		// Middleware
		if cfg.AdminMiddleware != nil {
			admin.Use(cfg.AdminMiddleware.RequireAdmin())
		}

		// Congresses
		if cfg.CongressHandler != nil {
			admin.GET("/congresses/:id", cfg.CongressHandler.Get)
			admin.POST("/congresses", cfg.CongressHandler.Create)
			admin.PUT("/congresses/:id", cfg.CongressHandler.Update)
			admin.DELETE("/congresses/:id", cfg.CongressHandler.Delete)
		}

		// Settings
		if cfg.SettingsHandler != nil {
			admin.GET("/settings", cfg.SettingsHandler.Get)
			admin.POST("/settings", cfg.SettingsHandler.Set)
		}

		// Upload
		if cfg.UploadHandler != nil {
			admin.POST("/upload", cfg.UploadHandler.Upload)
		}
	}

	return r
}
