package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/editais-backend/internal/http/response"
	"github.com/yungbote/editais-backend/internal/services"
)

type SettingsHandler struct {
	settings services.SettingsService
}

func NewSettingsHandler(settings services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GET /api/settings?key=ai_config&reveal=true
func (h *SettingsHandler) Get(c *gin.Context) {
	reveal, _ := strconv.ParseBool(c.Query("reveal"))
	value, err := h.settings.Get(c.Request.Context(), c.Query("key"), reveal)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", value)
}

// POST /api/settings
func (h *SettingsHandler) Set(c *gin.Context) {
	var req struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.settings.Set(c.Request.Context(), req.Key, req.Value)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, row)
}
