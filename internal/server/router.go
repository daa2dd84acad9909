package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with all routes registered.
func (s *Service) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.POST("/upload-document/", s.handleUploadDocument)

	return r
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
