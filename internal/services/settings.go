package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/editais-backend/internal/data/repos"
	"github.com/yungbote/editais-backend/internal/domain/settings"
	"github.com/yungbote/editais-backend/internal/platform/apierr"
	"github.com/yungbote/editais-backend/internal/platform/dbctx"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type SettingsService interface {
	// Get returns the stored value for key, or {} when unset. API keys inside
	// ai_config are masked unless reveal is true.
	Get(ctx context.Context, key string, reveal bool) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) (*settings.GlobalSetting, error)
	// AIConfig reads ai_config fresh from storage.
	AIConfig(ctx context.Context) (settings.AIConfig, error)
}

type settingsService struct {
	log  *logger.Logger
	repo repos.GlobalSettingRepo
}

func NewSettingsService(log *logger.Logger, repo repos.GlobalSettingRepo) SettingsService {
	return &settingsService{log: log.With("service", "SettingsService"), repo: repo}
}

var emptyObject = json.RawMessage(`{}`)

func (s *settingsService) Get(ctx context.Context, key string, reveal bool) (json.RawMessage, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apierr.BadRequest("invalid_request", "Key is required")
	}
	row, err := s.repo.Get(dbctx.New(ctx), key)
	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", key, err)
	}
	if row == nil || isEmptyJSON(row.Value) {
		return emptyObject, nil
	}
	if key != settings.KeyAIConfig || reveal {
		return json.RawMessage(row.Value), nil
	}
	cfg, err := settings.ParseAIConfig(row.Value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	masked, err := json.Marshal(cfg.Masked())
	if err != nil {
		return nil, err
	}
	return masked, nil
}

func (s *settingsService) Set(ctx context.Context, key string, value json.RawMessage) (*settings.GlobalSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" || isEmptyJSON(value) {
		return nil, apierr.BadRequest("invalid_request", "Key and value are required")
	}
	if key == settings.KeyAIConfig {
		merged, err := s.keepStoredKeys(ctx, value)
		if err != nil {
			return nil, err
		}
		value = merged
	}
	row, err := s.repo.Set(dbctx.New(ctx), key, datatypes.JSON(value))
	if err != nil {
		return nil, fmt.Errorf("set setting %q: %w", key, err)
	}
	s.log.Info("global setting updated", "key", key)
	return row, nil
}

func (s *settingsService) AIConfig(ctx context.Context) (settings.AIConfig, error) {
	row, err := s.repo.Get(dbctx.New(ctx), settings.KeyAIConfig)
	if err != nil {
		return settings.AIConfig{}, fmt.Errorf("get %s: %w", settings.KeyAIConfig, err)
	}
	if row == nil {
		return settings.AIConfig{}, nil
	}
	return settings.ParseAIConfig(row.Value)
}

// keepStoredKeys swaps masked API keys echoed back by the admin UI for the
// stored originals.
func (s *settingsService) keepStoredKeys(ctx context.Context, value json.RawMessage) (json.RawMessage, error) {
	incoming, err := settings.ParseAIConfig(value)
	if err != nil {
		return nil, apierr.BadRequest("invalid_request", "ai_config must be an object")
	}
	if !settings.IsMasked(incoming.APIKeys.Gemini) && !settings.IsMasked(incoming.APIKeys.OpenAI) {
		return value, nil
	}
	stored, err := s.AIConfig(ctx)
	if err != nil {
		return nil, err
	}
	if settings.IsMasked(incoming.APIKeys.Gemini) {
		incoming.APIKeys.Gemini = stored.APIKeys.Gemini
	}
	if settings.IsMasked(incoming.APIKeys.OpenAI) {
		incoming.APIKeys.OpenAI = stored.APIKeys.OpenAI
	}
	return json.Marshal(incoming)
}

func isEmptyJSON(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == `""` || s == "false"
}
