package activity

import (
	"coucou-server/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	activityGroup := r.Group("/activity")

	// 浏览无需登录
	activityGroup.GET("/list", ListActivities)
	activityGroup.GET("/get/:id", GetActivity)

	authed := activityGroup.Group("", middleware.Auth())
	{
		authed.GET("/mine", MyActivities)
		authed.POST("/create", CreateActivity)
		authed.PUT("/update/:id", UpdateActivity)

		authed.POST("/:id/join", JoinActivity)
		authed.POST("/:id/leave", LeaveActivity)
		authed.GET("/:id/roster/export", ExportRoster)

		authed.POST("/polish", PolishDescription)
		authed.POST("/image/presign", PresignImage)
		authed.POST("/image/upload", UploadImage)
	}
}
