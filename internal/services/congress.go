package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/editais-backend/internal/data/repos"
	types "github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/platform/apierr"
	"github.com/yungbote/editais-backend/internal/platform/dbctx"
	"github.com/yungbote/editais-backend/internal/platform/gcp"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

// TemplatePrefix is the storage folder holding every file of one congress.
func TemplatePrefix(id uuid.UUID) string {
	return fmt.Sprintf("congress-templates/%s/", id)
}

type CongressService interface {
	List(ctx context.Context) ([]*types.Congress, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Congress, error)
	GetBySlug(ctx context.Context, slug string) (*types.Congress, error)
	Create(ctx context.Context, in *types.Congress) (*types.Congress, error)
	// Update applies the JSON fields present in patch onto the stored record.
	Update(ctx context.Context, id uuid.UUID, patch []byte) (*types.Congress, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type congressService struct {
	log   *logger.Logger
	repo  repos.CongressRepo
	store gcp.ObjectStore
}

func NewCongressService(log *logger.Logger, repo repos.CongressRepo, store gcp.ObjectStore) CongressService {
	return &congressService{log: log.With("service", "CongressService"), repo: repo, store: store}
}

func (s *congressService) List(ctx context.Context) ([]*types.Congress, error) {
	rows, err := s.repo.GetAll(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("list congresses: %w", err)
	}
	if rows == nil {
		rows = []*types.Congress{}
	}
	return rows, nil
}

func (s *congressService) GetByID(ctx context.Context, id uuid.UUID) (*types.Congress, error) {
	row, err := s.repo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("get congress %s: %w", id, err)
	}
	if row == nil {
		return nil, errCongressNotFound
	}
	return row, nil
}

func (s *congressService) GetBySlug(ctx context.Context, slug string) (*types.Congress, error) {
	row, err := s.repo.GetBySlug(dbctx.New(ctx), strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("get congress by slug %q: %w", slug, err)
	}
	if row == nil {
		return nil, errCongressNotFound
	}
	return row, nil
}

func (s *congressService) Create(ctx context.Context, in *types.Congress) (*types.Congress, error) {
	if in == nil || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Slug) == "" {
		return nil, apierr.BadRequest("invalid_request", "Title and slug are required")
	}
	// The admin UI sends placeholder ids for new records.
	in.ID = uuid.Nil
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)

	if err := s.repo.Create(dbctx.New(ctx), in); err != nil {
		if errors.Is(err, repos.ErrSlugTaken) {
			return nil, errSlugTaken
		}
		return nil, fmt.Errorf("create congress: %w", err)
	}
	s.log.Info("congress created", "congress_id", in.ID, "slug", in.Slug)
	return in, nil
}

func (s *congressService) Update(ctx context.Context, id uuid.UUID, patch []byte) (*types.Congress, error) {
	dbc := dbctx.New(ctx)
	current, err := s.repo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load congress %s: %w", id, err)
	}
	if current == nil {
		return nil, errCongressNotFound
	}

	fields, err := decodePatch(patch)
	if err != nil {
		return nil, err
	}
	createdAt := current.CreatedAt
	if err := json.Unmarshal(fields, current); err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", err)
	}
	current.ID = id
	current.CreatedAt = createdAt
	var title struct {
		Title *string `json:"title"`
	}
	_ = json.Unmarshal(fields, &title)
	if title.Title != nil && strings.TrimSpace(*title.Title) != "" {
		current.Slug = Slugify(*title.Title)
	}
	if current.Slug == "" {
		return nil, apierr.BadRequest("invalid_request", "slug must not be empty")
	}

	if err := s.repo.Update(dbc, current); err != nil {
		switch {
		case errors.Is(err, repos.ErrSlugTaken):
			return nil, errSlugTaken
		case errors.Is(err, repos.ErrCongressNotFound):
			return nil, errCongressNotFound
		}
		return nil, fmt.Errorf("update congress %s: %w", id, err)
	}
	return current, nil
}

// DecodeCongress reads a congress body from the admin UI. The UI sends
// placeholder ids such as "novo-congresso" for unsaved records, so any id that
// is not a UUID is dropped.
func DecodeCongress(raw []byte) (*types.Congress, error) {
	fields, err := decodePatch(raw)
	if err != nil {
		return nil, err
	}
	var c types.Congress
	if err := json.Unmarshal(fields, &c); err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", err)
	}
	return &c, nil
}

// decodePatch checks that raw is a JSON object and removes the fields a
// client may not set.
func decodePatch(raw []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, apierr.BadRequest("invalid_request", "body must be a JSON object")
	}
	if rawID, ok := fields["id"]; ok {
		var id string
		if json.Unmarshal(rawID, &id) != nil || uuid.Validate(id) != nil {
			delete(fields, "id")
		}
	}
	delete(fields, "createdAt")
	delete(fields, "updatedAt")
	return json.Marshal(fields)
}

// Delete removes the congress's stored files first, then the record.
func (s *congressService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.store != nil {
		if err := s.store.DeletePrefix(ctx, TemplatePrefix(id)); err != nil {
			return fmt.Errorf("remove files for congress %s: %w", id, err)
		}
	}
	if err := s.repo.Delete(dbctx.New(ctx), id); err != nil {
		if errors.Is(err, repos.ErrCongressNotFound) {
			return errCongressNotFound
		}
		return fmt.Errorf("delete congress %s: %w", id, err)
	}
	s.log.Info("congress deleted", "congress_id", id)
	return nil
}
