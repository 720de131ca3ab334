package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Изменяющие маршруты закрыты API-ключом, если ключи заданы
	var protected []gin.HandlerFunc
	if len(h.cfg.APIKeys) > 0 {
		protected = append(protected, APIKeyAuthMiddleware(h.cfg, h.logger))
	}
	withAuth := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, protected...), handler)
	}

	participants := api.Group("/participants")
	{
		participants.POST("", withAuth(h.registerParticipant)...)
		participants.GET("/:id", h.getParticipant)
	}

	// Маршрут для отправки местоположения
	api.POST("/location", withAuth(h.submitLocation)...)

	// Мониторинг
	api.GET("/crowd/snapshot", h.getSnapshot)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
