package app

import (
	"github.com/yungbote/editais-backend/internal/modules/deadlines"
	"github.com/yungbote/editais-backend/internal/modules/relay"
	"github.com/yungbote/editais-backend/internal/platform/logger"
	"github.com/yungbote/editais-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Congress services.CongressService
	Settings services.SettingsService
	Upload   services.UploadService
	Chat     services.ChatService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	settingsService := services.NewSettingsService(log, repos.GlobalSetting)

	chatRelay := relay.New(log, relay.Config{
		GeminiAPIKey: cfg.AI.GeminiAPIKey,
		OpenAIAPIKey: cfg.AI.OpenAIAPIKey,
		Temperature:  cfg.AI.Temperature,
	}, clients.providers()...)

	policy, _ := deadlines.ParsePolicy(cfg.Chat.DeadlinePolicy)

	return Services{
		Auth:     services.NewAuthService(log, cfg.Admin.Password, cfg.Admin.SessionTTL),
		Congress: services.NewCongressService(log, repos.Congress, clients.Storage),
		Settings: settingsService,
		Upload:   services.NewUploadService(log, repos.Congress, clients.Storage),
		Chat: services.NewChatService(log, services.ChatConfig{
			Location:          cfg.Location(),
			Policy:            policy,
			MaxKnowledgeChars: cfg.Chat.MaxKnowledgeChars,
			RequirePersisted:  cfg.Chat.RequirePersisted,
		}, repos.Congress, settingsService, clients.Knowledge, chatRelay),
	}
}
