package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/editais-backend/internal/http/response"
	"github.com/yungbote/editais-backend/internal/modules/relay"
	"github.com/yungbote/editais-backend/internal/platform/ctxutil"
	"github.com/yungbote/editais-backend/internal/platform/logger"
	"github.com/yungbote/editais-backend/internal/services"
)

const textContentType = "text/plain; charset=utf-8"

type ChatHandler struct {
	log  *logger.Logger
	chat services.ChatService
}

func NewChatHandler(log *logger.Logger, chat services.ChatService) *ChatHandler {
	return &ChatHandler{log: log.With("handler", "ChatHandler"), chat: chat}
}

type chatReq struct {
	Messages []relay.Message `json:"messages"`
	Context  json.RawMessage `json:"context"`
}

// POST /api/chat
//
// The answer is streamed as plain text. Headers go out with the first chunk,
// so errors raised before it still get a proper status.
func (h *ChatHandler) Chat(c *gin.Context) {
	var body chatReq
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondText(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req := services.ChatRequest{Messages: body.Messages}
	if len(body.Context) > 0 && string(body.Context) != "null" {
		congress, err := services.DecodeCongress(body.Context)
		if err != nil {
			response.RespondText(c, http.StatusBadRequest, "Invalid request body.")
			return
		}
		req.Context = congress
	}

	ctx := c.Request.Context()
	started := false
	err := h.chat.Stream(ctx, req, func(delta string) error {
		if !started {
			started = true
			c.Header("Content-Type", textContentType)
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Content-Type-Options", "nosniff")
			c.Status(http.StatusOK)
		}
		if _, err := c.Writer.WriteString(delta); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err == nil {
		if !started {
			response.RespondText(c, http.StatusOK, "")
		}
		return
	}

	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		h.log.Info("chat client disconnected", "trace_id", ctxutil.TraceID(ctx))
		return
	}
	status, msg := services.ChatFailure(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("chat failed", "error", err, "status", status, "trace_id", ctxutil.TraceID(ctx))
	} else {
		h.log.Warn("chat rejected", "error", err, "status", status, "trace_id", ctxutil.TraceID(ctx))
	}
	if !started {
		response.RespondText(c, status, msg)
		return
	}
	_, _ = c.Writer.WriteString("\n\n" + msg)
	c.Writer.Flush()
}
