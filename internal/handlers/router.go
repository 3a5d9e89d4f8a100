package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every handler in this package.
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// NewRouter builds the engine serving /health and the /api/v1 routes of
// each registrar.
func NewRouter(registrars ...RouteRegistrar) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", health)

	api := router.Group("/api/v1")
	api.GET("/health", health)
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}

	return router
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
