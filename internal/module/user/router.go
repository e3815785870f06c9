package user

import (
	"coucou-server/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化用户模块的路由
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")

	userGroup.POST("/register", Register)
	userGroup.POST("/login", Login)
	userGroup.GET("/credit-level", GetCreditLevel)
	userGroup.GET("/:id/stats", Stats)

	authed := userGroup.Group("", middleware.Auth())
	{
		authed.POST("/logout", Logout)
		authed.GET("/me", Me)
		authed.PUT("/profile", UpdateProfile)
		authed.PUT("/password", ChangePassword)
	}
}
