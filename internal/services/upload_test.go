package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	types "github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/platform/dbctx"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("8f0b7a62-3f0e-4f57-9d8c-2b8c7a5c1e01")
	assert.Equal(t,
		"congress-templates/8f0b7a62-3f0e-4f57-9d8c-2b8c7a5c1e01/training-regulamento-geral.pdf",
		ObjectKey(id, UploadContextTraining, "Regulamento Geral.pdf"),
	)
}

func TestUploadTrainingFileIsDeduplicated(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	congress := &types.Congress{Title: "CONIC", Slug: "conic"}
	require.NoError(t, fx.congressRepo.Create(dbctx.New(ctx), congress))
	svc := NewUploadService(logger.Nop(), fx.congressRepo, fx.store)

	in := UploadInput{CongressID: congress.ID, Context: UploadContextTraining, FileName: "Edital.pdf", ContentType: "application/pdf"}
	for i := 0; i < 2; i++ {
		in.File = strings.NewReader("%PDF-1.4")
		res, err := svc.Upload(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "https://files.test/"+ObjectKey(congress.ID, "training", "Edital.pdf"), res.PublicURL)
	}

	stored, err := fx.congressRepo.GetByID(dbctx.New(ctx), congress.ID)
	require.NoError(t, err)
	assert.Len(t, stored.TrainingFileURLs, 1)
	assert.Equal(t, "application/pdf", fx.store.types[ObjectKey(congress.ID, "training", "Edital.pdf")])
}

func TestUploadTemplateKeepsOtherLinks(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	congress := &types.Congress{
		Title:        "CONIC",
		Slug:         "conic",
		TemplateURLs: datatypes.NewJSONType(types.TemplateURLs{EBanner: "https://old/banner.pptx"}),
	}
	require.NoError(t, fx.congressRepo.Create(dbctx.New(ctx), congress))
	svc := NewUploadService(logger.Nop(), fx.congressRepo, fx.store)

	res, err := svc.Upload(ctx, UploadInput{
		CongressID:   congress.ID,
		TemplateType: TemplateApresentacao,
		FileName:     "Modelo Oral.pptx",
		File:         strings.NewReader("pk"),
	})
	require.NoError(t, err)

	urls := res.Congress.TemplateURLs.Data()
	assert.Equal(t, "https://old/banner.pptx", urls.EBanner)
	assert.Equal(t, res.PublicURL, urls.ApresentacaoOral)
	assert.Contains(t, res.PublicURL, "/apresentacaoOral-modelo-oral.pptx")
}

func TestUploadValidation(t *testing.T) {
	fx := newFixture(t)
	svc := NewUploadService(logger.Nop(), fx.congressRepo, fx.store)
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadInput{CongressID: uuid.New(), FileName: "a.pdf", File: strings.NewReader("x")})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Upload(ctx, UploadInput{CongressID: uuid.New(), TemplateType: "poster", FileName: "a.pdf", File: strings.NewReader("x")})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Upload(ctx, UploadInput{CongressID: uuid.New(), Context: UploadContextTraining, FileName: "a.pdf", File: strings.NewReader("x")})
	requireStatus(t, err, http.StatusNotFound)
}
