package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/editais-backend/internal/http/response"
	"github.com/yungbote/editais-backend/internal/services"
)

type UploadHandler struct {
	upload services.UploadService
}

func NewUploadHandler(upload services.UploadService) *UploadHandler {
	return &UploadHandler{upload: upload}
}

// POST /api/upload (multipart: file, congressId, templateType, context)
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	congressID, err := uuid.Parse(strings.TrimSpace(c.PostForm("congressId")))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_congress_id", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer f.Close()

	res, err := h.upload.Upload(c.Request.Context(), services.UploadInput{
		CongressID:   congressID,
		TemplateType: services.TemplateType(strings.TrimSpace(c.PostForm("templateType"))),
		Context:      strings.TrimSpace(c.PostForm("context")),
		FileName:     fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		File:         f,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
