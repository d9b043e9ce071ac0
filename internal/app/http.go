package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/editais-backend/internal/http"
	httpH "github.com/yungbote/editais-backend/internal/http/handlers"
	httpMW "github.com/yungbote/editais-backend/internal/http/middleware"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type Middleware struct {
	Admin *httpMW.AdminMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Chat     *httpH.ChatHandler
	Congress *httpH.CongressHandler
	Settings *httpH.SettingsHandler
	Upload   *httpH.UploadHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(log, services.Auth, cfg.Admin.CookieSecure),
		Chat:     httpH.NewChatHandler(log, services.Chat),
		Congress: httpH.NewCongressHandler(services.Congress),
		Settings: httpH.NewSettingsHandler(services.Settings),
		Upload:   httpH.NewUploadHandler(services.Upload),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Admin: httpMW.NewAdminMiddleware(log, services.Auth, httpH.SessionCookie),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.CORS.Origins,
		AdminMiddleware: middleware.Admin,
		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		ChatHandler:     handlers.Chat,
		CongressHandler: handlers.Congress,
		SettingsHandler: handlers.Settings,
		UploadHandler:   handlers.Upload,
	})
}
