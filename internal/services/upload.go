package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/editais-backend/internal/data/repos"
	types "github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/platform/apierr"
	"github.com/yungbote/editais-backend/internal/platform/dbctx"
	"github.com/yungbote/editais-backend/internal/platform/gcp"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

const UploadContextTraining = "training"

type TemplateType string

const (
	TemplateResumoComID  TemplateType = "resumoExpandidoComId"
	TemplateResumoSemID  TemplateType = "resumoExpandidoSemId"
	TemplateApresentacao TemplateType = "apresentacaoOral"
	TemplateEBanner      TemplateType = "eBanner"
)

type UploadInput struct {
	CongressID   uuid.UUID
	TemplateType TemplateType
	// Context is "training" for knowledge files; anything else means a template.
	Context     string
	FileName    string
	ContentType string
	File        io.Reader
}

type UploadResult struct {
	PublicURL string          `json:"publicUrl"`
	Congress  *types.Congress `json:"congress"`
}

type UploadService interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
}

type uploadService struct {
	log   *logger.Logger
	repo  repos.CongressRepo
	store gcp.ObjectStore
}

func NewUploadService(log *logger.Logger, repo repos.CongressRepo, store gcp.ObjectStore) UploadService {
	return &uploadService{log: log.With("service", "UploadService"), repo: repo, store: store}
}

// ObjectKey is where an upload for congressID is stored.
func ObjectKey(congressID uuid.UUID, prefix, fileName string) string {
	return TemplatePrefix(congressID) + prefix + "-" + SlugifyFilename(fileName)
}

func (s *uploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	training := in.Context == UploadContextTraining
	if in.File == nil || in.CongressID == uuid.Nil || (!training && in.TemplateType == "") {
		return nil, apierr.BadRequest("invalid_request", "Missing required fields")
	}
	if !training && !validTemplateType(in.TemplateType) {
		return nil, apierr.BadRequest("invalid_template_type", fmt.Sprintf("unknown template type %q", in.TemplateType))
	}
	if s.store == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}

	dbc := dbctx.New(ctx)
	congress, err := s.repo.GetByID(dbc, in.CongressID)
	if err != nil {
		return nil, fmt.Errorf("load congress %s: %w", in.CongressID, err)
	}
	if congress == nil {
		return nil, errCongressNotFound
	}

	prefix := UploadContextTraining
	if !training {
		prefix = string(in.TemplateType)
	}
	key := ObjectKey(in.CongressID, prefix, in.FileName)
	if err := s.store.Upload(ctx, key, in.ContentType, in.File); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	publicURL := s.store.PublicURL(key)
	s.log.Info("file uploaded", "congress_id", in.CongressID, "key", key, "training", training)

	changed := true
	if training {
		changed = AppendTrainingURL(congress, publicURL)
	} else {
		SetTemplateURL(congress, in.TemplateType, publicURL)
	}
	if changed {
		if err := s.repo.Update(dbc, congress); err != nil {
			return nil, fmt.Errorf("update congress %s: %w", in.CongressID, err)
		}
	}
	return &UploadResult{PublicURL: publicURL, Congress: congress}, nil
}

// AppendTrainingURL adds url unless it is already listed. Reports whether c changed.
func AppendTrainingURL(c *types.Congress, url string) bool {
	if slices.Contains(c.TrainingFileURLs, url) {
		return false
	}
	c.TrainingFileURLs = append(c.TrainingFileURLs, url)
	return true
}

// SetTemplateURL replaces one template link and keeps the others.
func SetTemplateURL(c *types.Congress, t TemplateType, url string) {
	urls := c.TemplateURLs.Data()
	switch t {
	case TemplateResumoComID:
		urls.ResumoExpandidoComID = url
	case TemplateResumoSemID:
		urls.ResumoExpandidoSemID = url
	case TemplateApresentacao:
		urls.ApresentacaoOral = url
	case TemplateEBanner:
		urls.EBanner = url
	}
	c.TemplateURLs = datatypes.NewJSONType(urls)
}

func validTemplateType(t TemplateType) bool {
	switch TemplateType(strings.TrimSpace(string(t))) {
	case TemplateResumoComID, TemplateResumoSemID, TemplateApresentacao, TemplateEBanner:
		return true
	}
	return false
}
