package settings

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const KeyAIConfig = "ai_config"

type GlobalSetting struct {
	Key       string         `gorm:"primaryKey;column:key" json:"key"`
	Value     datatypes.JSON `gorm:"column:value" json:"value"`
	UpdatedAt time.Time      `gorm:"not null;column:updated_at" json:"updatedAt"`
}

func (GlobalSetting) TableName() string { return "global_settings" }

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

type APIKeys struct {
	Gemini string `json:"gemini,omitempty"`
	OpenAI string `json:"openai,omitempty"`
}

// AIConfig is the value stored under KeyAIConfig.
type AIConfig struct {
	Provider Provider `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	APIKeys  APIKeys  `json:"apiKeys"`
}

// ParseAIConfig decodes a stored value. Empty input is a zero config.
func ParseAIConfig(raw []byte) (AIConfig, error) {
	var cfg AIConfig
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s == "{}" {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return AIConfig{}, err
	}
	cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.APIKeys.Gemini = strings.TrimSpace(cfg.APIKeys.Gemini)
	cfg.APIKeys.OpenAI = strings.TrimSpace(cfg.APIKeys.OpenAI)
	return cfg, nil
}

// Masked returns a copy safe to show in the admin UI.
func (c AIConfig) Masked() AIConfig {
	c.APIKeys.Gemini = maskKey(c.APIKeys.Gemini)
	c.APIKeys.OpenAI = maskKey(c.APIKeys.OpenAI)
	return c
}

// MaskMarker is the filler Masked puts in place of hidden key characters.
const MaskMarker = "••••"

// IsMasked reports whether k came from Masked rather than from a user.
func IsMasked(k string) bool { return strings.Contains(k, MaskMarker) }

func maskKey(k string) string {
	if k == "" {
		return ""
	}
	if len(k) <= 8 {
		return MaskMarker
	}
	return k[:4] + MaskMarker + k[len(k)-4:]
}
