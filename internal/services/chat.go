package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/editais-backend/internal/data/repos"
	types "github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/domain/settings"
	"github.com/yungbote/editais-backend/internal/modules/deadlines"
	"github.com/yungbote/editais-backend/internal/modules/knowledge"
	"github.com/yungbote/editais-backend/internal/modules/prompt"
	"github.com/yungbote/editais-backend/internal/modules/relay"
	"github.com/yungbote/editais-backend/internal/observability"
	"github.com/yungbote/editais-backend/internal/platform/apierr"
	"github.com/yungbote/editais-backend/internal/platform/ctxutil"
	"github.com/yungbote/editais-backend/internal/platform/dbctx"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type ChatRequest struct {
	Messages []relay.Message `json:"messages"`
	Context  *types.Congress `json:"context"`
}

type ChatConfig struct {
	Location          *time.Location
	Policy            deadlines.Policy
	MaxKnowledgeChars int
	// RequirePersisted rejects chats whose context is not a stored congress.
	RequirePersisted bool
}

type KnowledgeLoader interface {
	LoadAll(ctx context.Context, urls []string) []knowledge.Document
}

type ChatRelay interface {
	Resolve(cfg settings.AIConfig) (relay.Selection, error)
	Stream(ctx context.Context, sel relay.Selection, systemPrompt string, history []relay.Message, onDelta func(delta string) error) error
}

type ChatService interface {
	// Stream answers the last message of req, calling onDelta for each chunk.
	Stream(ctx context.Context, req ChatRequest, onDelta func(delta string) error) error
}

type chatService struct {
	log       *logger.Logger
	cfg       ChatConfig
	congress  repos.CongressRepo
	settings  SettingsService
	knowledge KnowledgeLoader
	relay     ChatRelay
	now       func() time.Time
}

func NewChatService(
	log *logger.Logger,
	cfg ChatConfig,
	congressRepo repos.CongressRepo,
	settingsService SettingsService,
	loader KnowledgeLoader,
	chatRelay ChatRelay,
) ChatService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Policy == "" {
		cfg.Policy = deadlines.PolicyNearest
	}
	return &chatService{
		log:       log.With("service", "ChatService"),
		cfg:       cfg,
		congress:  congressRepo,
		settings:  settingsService,
		knowledge: loader,
		relay:     chatRelay,
		now:       time.Now,
	}
}

func (s *chatService) Stream(ctx context.Context, req ChatRequest, onDelta func(delta string) error) error {
	log := s.log.With("trace_id", ctxutil.TraceID(ctx))
	session := relay.NewSession(log)
	_ = session.Resolving()

	sel, systemPrompt, err := s.prepare(ctx, log, req)
	if err != nil {
		_ = session.Fail(err)
		return err
	}

	_ = session.Streaming()
	err = s.relay.Stream(ctx, sel, systemPrompt, req.Messages, func(delta string) error {
		session.Chunk()
		return onDelta(delta)
	})
	if err != nil {
		_ = session.Fail(err)
		return err
	}
	_ = session.Complete()
	return nil
}

func (s *chatService) prepare(ctx context.Context, log *logger.Logger, req ChatRequest) (relay.Selection, string, error) {
	if len(req.Messages) == 0 {
		return relay.Selection{}, "", apierr.BadRequest("invalid_request", "messages must not be empty")
	}
	congress, err := s.resolveCongress(ctx, req.Context)
	if err != nil {
		return relay.Selection{}, "", err
	}

	aiCfg, err := s.settings.AIConfig(ctx)
	if err != nil {
		return relay.Selection{}, "", fmt.Errorf("load ai settings: %w", err)
	}
	sel, err := s.relay.Resolve(aiCfg)
	if err != nil {
		return relay.Selection{}, "", err
	}
	log.Info("chat request", "congress", congress.Title, "provider", sel.Provider.Name(), "model", sel.Model, "messages", len(req.Messages))

	now := s.now()
	var dates *deadlines.ResolvedDates
	if rd, ok := deadlines.Resolve(congress.Dates(), s.cfg.Policy, now, s.cfg.Location); ok {
		dates = &rd
	}

	knowledgeText := s.loadKnowledge(ctx, log, congress.TrainingFileURLs)

	systemPrompt := prompt.BuildSystemPrompt(prompt.Input{
		Congress:          congress,
		Dates:             dates,
		Knowledge:         knowledgeText,
		Now:               now,
		Location:          s.cfg.Location,
		MaxKnowledgeChars: s.cfg.MaxKnowledgeChars,
	})
	return sel, systemPrompt, nil
}

func (s *chatService) loadKnowledge(ctx context.Context, log *logger.Logger, urls []string) string {
	if len(urls) == 0 || s.knowledge == nil {
		return ""
	}
	ctx, span := observability.StartSpan(ctx, "chat.load_knowledge", attribute.Int("files", len(urls)))
	defer span.End()

	docs := s.knowledge.LoadAll(ctx, urls)
	failed := 0
	for _, d := range docs {
		if d.Err != nil {
			failed++
		}
	}
	text := knowledge.Join(docs)
	span.SetAttributes(attribute.Int("failed", failed), attribute.Int("chars", len(text)))
	log.Debug("knowledge loaded", "files", len(urls), "failed", failed, "chars", len(text))
	return text
}

// resolveCongress prefers the stored record matching the supplied context by
// id, then by slug.
func (s *chatService) resolveCongress(ctx context.Context, supplied *types.Congress) (*types.Congress, error) {
	if supplied == nil {
		return nil, apierr.BadRequest("invalid_request", "context is required")
	}
	var stored *types.Congress
	if s.congress != nil {
		dbc := dbctx.New(ctx)
		var err error
		if supplied.ID != uuid.Nil {
			if stored, err = s.congress.GetByID(dbc, supplied.ID); err != nil {
				return nil, fmt.Errorf("load congress %s: %w", supplied.ID, err)
			}
		}
		if stored == nil && strings.TrimSpace(supplied.Slug) != "" {
			if stored, err = s.congress.GetBySlug(dbc, strings.TrimSpace(supplied.Slug)); err != nil {
				return nil, fmt.Errorf("load congress %q: %w", supplied.Slug, err)
			}
		}
	}
	if stored == nil {
		if s.cfg.RequirePersisted {
			return nil, errCongressNotFound
		}
		stored = supplied
	}
	if !stored.ChatEnabled() {
		return nil, errChatDisabled
	}
	return stored, nil
}

// ChatFailure maps a Stream error to the status and plain-text body for the caller.
func ChatFailure(err error) (int, string) {
	if ae, ok := apierr.As(err); ok {
		return ae.Status, ae.Error()
	}
	return relay.Classify(err)
}
