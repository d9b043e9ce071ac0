package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/editais-backend/internal/domain/settings"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

func newSettingsService(t *testing.T) SettingsService {
	t.Helper()
	return NewSettingsService(logger.Nop(), newFixture(t).settingsRepo)
}

func TestSettingsGetUnsetIsEmptyObject(t *testing.T) {
	svc := newSettingsService(t)
	got, err := svc.Get(context.Background(), settings.KeyAIConfig, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(got))

	cfg, err := svc.AIConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.AIConfig{}, cfg)
}

func TestSettingsMasksKeysUnlessRevealed(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()
	_, err := svc.Set(ctx, settings.KeyAIConfig, json.RawMessage(`{"provider":"openai","model":"gpt-4o-mini","apiKeys":{"openai":"sk-1234567890abcd"}}`))
	require.NoError(t, err)

	masked, err := svc.Get(ctx, settings.KeyAIConfig, false)
	require.NoError(t, err)
	var view settings.AIConfig
	require.NoError(t, json.Unmarshal(masked, &view))
	assert.Equal(t, "sk-1"+settings.MaskMarker+"abcd", view.APIKeys.OpenAI)
	assert.Equal(t, "gpt-4o-mini", view.Model)

	raw, err := svc.Get(ctx, settings.KeyAIConfig, true)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "sk-1234567890abcd")

	cfg, err := svc.AIConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-1234567890abcd", cfg.APIKeys.OpenAI)
}

func TestSettingsSaveKeepsMaskedKeys(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()
	_, err := svc.Set(ctx, settings.KeyAIConfig, json.RawMessage(`{"provider":"gemini","apiKeys":{"gemini":"AIza-secret-0001","openai":"sk-secret-0002"}}`))
	require.NoError(t, err)

	masked, err := svc.Get(ctx, settings.KeyAIConfig, false)
	require.NoError(t, err)
	var echoed settings.AIConfig
	require.NoError(t, json.Unmarshal(masked, &echoed))
	echoed.Provider = settings.ProviderOpenAI
	echoed.APIKeys.Gemini = "AIza-new-key-9999"
	body, err := json.Marshal(echoed)
	require.NoError(t, err)

	_, err = svc.Set(ctx, settings.KeyAIConfig, body)
	require.NoError(t, err)

	cfg, err := svc.AIConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "AIza-new-key-9999", cfg.APIKeys.Gemini)
	assert.Equal(t, "sk-secret-0002", cfg.APIKeys.OpenAI)
}

func TestSettingsSetValidation(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "", json.RawMessage(`{"a":1}`))
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Set(ctx, "theme", json.RawMessage(`null`))
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Set(ctx, settings.KeyAIConfig, json.RawMessage(`["x"]`))
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Set(ctx, "theme", json.RawMessage(`{"dark":true}`))
	require.NoError(t, err)
	got, err := svc.Get(ctx, "theme", false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dark":true}`, string(got))
}
