package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes registers the service banner and health check.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", home)
	r.GET("/api/health", health)
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Sistema de Psicologia Organizacional - Backend",
		"status":  "online",
		"version": "1.0.0",
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
