package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/editais-backend/internal/modules/knowledge"
	"github.com/yungbote/editais-backend/internal/modules/relay"
	"github.com/yungbote/editais-backend/internal/platform/gcp"
	"github.com/yungbote/editais-backend/internal/platform/gemini"
	"github.com/yungbote/editais-backend/internal/platform/logger"
	"github.com/yungbote/editais-backend/internal/platform/openai"
)

type Clients struct {
	Storage   gcp.ObjectStore
	Gemini    *gemini.Client
	OpenAI    *openai.Client
	Knowledge *knowledge.Fetcher
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Gcs
	var store gcp.ObjectStore
	if strings.TrimSpace(cfg.Storage.Bucket) == "" {
		log.Warn("STORAGE_BUCKET is empty; uploads are disabled")
	} else {
		bucket, err := gcp.NewBucketService(ctx, log, gcp.StorageConfig{
			Bucket:        cfg.Storage.Bucket,
			Mode:          gcp.StorageMode(cfg.Storage.Mode),
			EmulatorHost:  cfg.Storage.EmulatorHost,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
			CDNDomain:     cfg.Storage.CDNDomain,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init bucket client: %w", err)
		}
		store = bucket
	}

	// Knowledge
	fetcher := knowledge.NewFetcher(log, &http.Client{}, knowledge.Config{
		FetchTimeout: cfg.Knowledge.FetchTimeout,
		Budget:       cfg.Knowledge.Budget,
		MaxBytes:     cfg.Knowledge.MaxBytes,
		Concurrency:  cfg.Knowledge.Concurrency,
	})

	return Clients{
		Storage:   store,
		Gemini:    gemini.NewClient(log),
		OpenAI:    openai.NewClient(log, cfg.AI.OpenAIBaseURL),
		Knowledge: fetcher,
	}, nil
}

func (c Clients) providers() []relay.Provider {
	return []relay.Provider{
		relay.NewGeminiProvider(c.Gemini),
		relay.NewOpenAIProvider(c.OpenAI),
	}
}
