package swipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oggyb/sparkswipe/internal/app"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
	"github.com/oggyb/sparkswipe/internal/server"
)

// Registrar ties the swipe routes into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the swipe service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the swipe routes to the engine.
func (r *Registrar) Register(e *gin.Engine, auth *server.Auth) {
	h := &handler{svc: NewService(r.appCtx)}

	e.GET("/swipe", auth.RequirePage(), h.swipe)
	e.GET("/like/:profileID", auth.RequireAPI(), h.like)
}

type handler struct {
	svc *Service
}

func (h *handler) swipe(c *gin.Context) {
	profile, err := h.svc.RandomProfile(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    profile.ID,
		"name":  profile.Name,
		"age":   profile.Age,
		"bio":   profile.Bio,
		"photo": profile.Photo,
	})
}

func (h *handler) like(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("profileID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}

	userID := server.CurrentUser(c)

	result, err := h.svc.AttemptLike(c.Request.Context(), userID, profileID)
	if err != nil {
		if errors.Is(err, apperr.ErrQuotaExhausted) {
			// expected business outcome, not a failure
			c.JSON(http.StatusOK, gin.H{"status": "no_likes"})
			return
		}
		c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error"})
		return
	}

	resp := gin.H{
		"status": string(result.Outcome),
		"likes":  result.RemainingLikes,
	}
	if result.Outcome == OutcomeMatched {
		resp["match_id"] = result.MatchID
	}
	c.JSON(http.StatusOK, resp)
}
