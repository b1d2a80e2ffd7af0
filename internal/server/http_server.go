package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oggyb/sparkswipe/internal/config"
)

// NewRouter builds the gin engine and registers all provided services.
func NewRouter(cfg *config.Config, auth *Auth, registrars ...Registrar) *gin.Engine {
	if cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// login page placeholder; rendering lives elsewhere
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"app": "sparkswipe"})
	})

	for _, reg := range registrars {
		reg.Register(r, auth)
	}

	return r
}

// StartHTTPServer boots the HTTP server on the configured address.
func StartHTTPServer(cfg *config.Config, auth *Auth, registrars ...Registrar) error {
	r := NewRouter(cfg, auth, registrars...)
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	return r.Run(addr)
}
