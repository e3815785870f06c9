package ping

import (
	"coucou-server/internal/global/database"
	"coucou-server/internal/global/response"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		result := map[string]any{
			"message":  "pong",
			"version":  version,
			"database": "ok",
		}
		if database.DB == nil {
			result["database"] = "unavailable"
		} else if err := database.Ping(database.DB); err != nil {
			log.Warn("数据库不可用", "error", err)
			result["database"] = "unavailable"
		}
		response.Success(c, result)
	})
}
