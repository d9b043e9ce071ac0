package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/editais-backend/internal/http/response"
	"github.com/yungbote/editais-backend/internal/services"
)

type CongressHandler struct {
	congress services.CongressService
}

func NewCongressHandler(congress services.CongressService) *CongressHandler {
	return &CongressHandler{congress: congress}
}

// GET /api/congresses
func (h *CongressHandler) List(c *gin.Context) {
	rows, err := h.congress.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/congresses/slug/:slug
func (h *CongressHandler) GetBySlug(c *gin.Context) {
	row, err := h.congress.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, row)
}

// GET /api/congresses/:id
func (h *CongressHandler) Get(c *gin.Context) {
	id, ok := congressID(c)
	if !ok {
		return
	}
	row, err := h.congress.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, row)
}

// POST /api/congresses
func (h *CongressHandler) Create(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in, err := services.DecodeCongress(raw)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	row, err := h.congress.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, row)
}

// PUT /api/congresses/:id
func (h *CongressHandler) Update(c *gin.Context) {
	id, ok := congressID(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.congress.Update(c.Request.Context(), id, raw)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/congresses/:id
func (h *CongressHandler) Delete(c *gin.Context) {
	id, ok := congressID(c)
	if !ok {
		return
	}
	if err := h.congress.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Congress deleted successfully"})
}

func congressID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_congress_id", err)
		return uuid.Nil, false
	}
	return id, true
}
