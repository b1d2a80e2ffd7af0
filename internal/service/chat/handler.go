package chat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oggyb/sparkswipe/internal/app"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
	"github.com/oggyb/sparkswipe/internal/server"
)

// Registrar ties the chat routes into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the chat service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the chat routes to the engine.
func (r *Registrar) Register(e *gin.Engine, auth *server.Auth) {
	h := &handler{svc: NewService(r.appCtx)}

	e.GET("/matches", auth.RequirePage(), h.matches)
	e.GET("/chat/:matchID", auth.RequirePage(), h.chat)
	e.GET("/get_messages/:matchID", auth.RequireAPI(), h.getMessages)
	e.POST("/send_message/:matchID", auth.RequireAPI(), h.sendMessage)
}

type handler struct {
	svc *Service
}

func parseMatchID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("matchID"), 10, 64)
	return id, err == nil
}

func (h *handler) matches(c *gin.Context) {
	userID := server.CurrentUser(c)

	matches, err := h.svc.ListMatches(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}

	out := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		out = append(out, gin.H{
			"id":    m.ID,
			"user1": m.User1ID,
			"user2": m.User2ID,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) chat(c *gin.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/matches")
		return
	}

	userID := server.CurrentUser(c)

	allowed, err := h.svc.AuthorizeMatchAccess(c.Request.Context(), userID, matchID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}
	if !allowed {
		// missing match and foreign match look the same from here
		c.Redirect(http.StatusSeeOther, "/matches")
		return
	}

	messages, err := h.svc.ListMessages(c.Request.Context(), matchID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}

	pairs := make([][]any, 0, len(messages))
	for _, m := range messages {
		pairs = append(pairs, []any{m.SenderID, m.Text})
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id": matchID,
		"user_id":  userID,
		"messages": pairs,
	})
}

func (h *handler) getMessages(c *gin.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}

	userID := server.CurrentUser(c)

	allowed, err := h.svc.AuthorizeMatchAccess(c.Request.Context(), userID, matchID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error"})
		return
	}

	messages, err := h.svc.ListMessages(c.Request.Context(), matchID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}

	pairs := make([][]any, 0, len(messages))
	for _, m := range messages {
		pairs = append(pairs, []any{m.SenderID, m.Text})
	}
	c.JSON(http.StatusOK, pairs)
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *handler) sendMessage(c *gin.Context) {
	matchID, ok := parseMatchID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}

	userID := server.CurrentUser(c)

	allowed, err := h.svc.AuthorizeMatchAccess(c.Request.Context(), userID, matchID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error"})
		return
	}

	if _, err := h.svc.AppendMessage(c.Request.Context(), matchID, userID, req.Text); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
