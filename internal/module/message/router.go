package message

import (
	"coucou-server/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleMessage) InitRouter(r *gin.RouterGroup) {
	messageGroup := r.Group("/message", middleware.Auth())
	{
		messageGroup.GET("/list", ListConversations)
		messageGroup.GET("/unread", UnreadCount)
		messageGroup.POST("/read", MarkAsRead)
		messageGroup.POST("/read-all", MarkAllAsRead)
		messageGroup.POST("/send", Send)
	}
}
