package account

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/oggyb/sparkswipe/internal/app"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
	"github.com/oggyb/sparkswipe/internal/server"
)

// Registrar ties the account routes into the HTTP server.
type Registrar struct {
	appCtx    *app.AppContext
	uploadDir string
}

// NewRegistrar creates a new Registrar for the account service.
func NewRegistrar(appCtx *app.AppContext, uploadDir string) *Registrar {
	return &Registrar{appCtx: appCtx, uploadDir: uploadDir}
}

// Register attaches the account routes to the engine.
func (r *Registrar) Register(e *gin.Engine, auth *server.Auth) {
	h := &handler{
		svc:       NewService(r.appCtx),
		auth:      auth,
		uploadDir: r.uploadDir,
	}

	e.POST("/register", h.register)
	e.POST("/login", h.login)
	e.GET("/logout", h.logout)

	page := e.Group("/", auth.RequirePage())
	page.GET("/home", h.home)
	page.GET("/profile", h.profile)
	page.GET("/premium", h.premium)
	page.GET("/activate_premium", h.activatePremium)
	page.POST("/upload_photo", h.uploadPhoto)
}

type handler struct {
	svc       *Service
	auth      *server.Auth
	uploadDir string
}

// savePhoto stores an optional multipart photo and returns the stored
// filename, or "" when no file was sent.
func (h *handler) savePhoto(c *gin.Context) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil || file.Filename == "" {
		return "", nil
	}
	filename := filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

func (h *handler) register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	photo, err := h.savePhoto(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "photo upload failed")
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), email, password, photo); err != nil {
		if errors.Is(err, apperr.ErrDuplicateEmail) {
			c.String(apperr.HTTPStatus(err), "email already registered")
			return
		}
		c.String(apperr.HTTPStatus(err), "registration failed")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.svc.Login(c.Request.Context(), email, password)
	if err != nil {
		// unknown email and wrong password answer identically
		c.String(apperr.HTTPStatus(apperr.ErrInvalidCredentials), "invalid credentials")
		return
	}

	if err := h.auth.Establish(c, user.ID); err != nil {
		c.String(http.StatusInternalServerError, "session failed")
		return
	}

	c.Redirect(http.StatusSeeOther, "/home")
}

func (h *handler) logout(c *gin.Context) {
	h.auth.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "home"})
}

func (h *handler) profile(c *gin.Context) {
	userID := server.CurrentUser(c)

	user, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		// session points at a deleted account; force a fresh login
		h.auth.Clear(c)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"premium": user.Premium,
		"likes":   user.Likes,
		"photo":   user.Photo,
	})
}

func (h *handler) premium(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "premium"})
}

func (h *handler) activatePremium(c *gin.Context) {
	userID := server.CurrentUser(c)

	if err := h.svc.ActivatePremium(c.Request.Context(), userID); err != nil {
		c.String(apperr.HTTPStatus(err), "premium activation failed")
		return
	}

	c.Redirect(http.StatusSeeOther, "/swipe")
}

func (h *handler) uploadPhoto(c *gin.Context) {
	userID := server.CurrentUser(c)

	photo, err := h.savePhoto(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "photo upload failed")
		return
	}
	if photo != "" {
		if err := h.svc.SetPhoto(c.Request.Context(), userID, photo); err != nil {
			c.String(apperr.HTTPStatus(err), "photo update failed")
			return
		}
	}

	c.Redirect(http.StatusSeeOther, "/profile")
}
