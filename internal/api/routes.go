package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP router with CORS enabled.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/report", h.GenerateReport)
		api.POST("/reports", h.EnqueueBatch)
		api.GET("/history", h.GetHistory)
		api.GET("/repeat-players", h.GetRepeatPlayers)
		api.GET("/rules", h.GetRules)
	}

	return router
}
