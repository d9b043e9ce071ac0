package relay

import (
	"context"
	"fmt"

	"github.com/yungbote/editais-backend/internal/domain/settings"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

const (
	DefaultTemperature = 0.3
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o"
)

// Config carries the process-level fallbacks used when the stored ai_config
// leaves a value empty.
type Config struct {
	GeminiAPIKey string
	OpenAIAPIKey string
	Temperature  float64
}

type Relay struct {
	log       *logger.Logger
	cfg       Config
	providers map[string]Provider
}

func New(log *logger.Logger, cfg Config, providers ...Provider) *Relay {
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		if p != nil {
			byName[p.Name()] = p
		}
	}
	return &Relay{log: log.With("module", "Relay"), cfg: cfg, providers: byName}
}

type Selection struct {
	Provider Provider
	Model    string
	APIKey   string
}

// Resolve picks provider, model and key. Stored values win over the
// environment defaults; a missing key is a ConfigError.
func (r *Relay) Resolve(ai settings.AIConfig) (Selection, error) {
	name := ai.Provider
	if name == "" {
		name = settings.ProviderGemini
	}
	var model, key string
	switch name {
	case settings.ProviderOpenAI:
		model, key = DefaultOpenAIModel, firstNonEmpty(ai.APIKeys.OpenAI, r.cfg.OpenAIAPIKey)
	case settings.ProviderGemini:
		model, key = DefaultGeminiModel, firstNonEmpty(ai.APIKeys.Gemini, r.cfg.GeminiAPIKey)
	default:
		return Selection{}, &ConfigError{Msg: fmt.Sprintf("Unknown AI provider %q.", name)}
	}
	if ai.Model != "" {
		model = ai.Model
	}
	if key == "" {
		return Selection{}, missingKey(string(name))
	}
	p, ok := r.providers[string(name)]
	if !ok {
		return Selection{}, &ConfigError{Msg: fmt.Sprintf("AI provider %q is not available.", name)}
	}
	return Selection{Provider: p, Model: model, APIKey: key}, nil
}

// Stream forwards the completion for history to onDelta. It stops forwarding
// as soon as ctx is done.
func (r *Relay) Stream(ctx context.Context, sel Selection, systemPrompt string, history []Message, onDelta func(delta string) error) error {
	r.log.Debug("relay stream starting", "provider", sel.Provider.Name(), "model", sel.Model, "messages", len(history))
	return sel.Provider.Stream(ctx, Request{
		Model:        sel.Model,
		APIKey:       sel.APIKey,
		SystemPrompt: systemPrompt,
		History:      history,
		Temperature:  r.cfg.Temperature,
	}, func(delta string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return onDelta(delta)
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
