package activity

import (
	"coucou-server/internal/global/context"
	"coucou-server/internal/global/response"
	"coucou-server/internal/model"
	"coucou-server/internal/module/activity/lifecycle"

	"github.com/gin-gonic/gin"
)

// ListActivitiesReq 列表查询参数，category 为 all 或空时不过滤
type ListActivitiesReq struct {
	Category string `form:"category"`
	Q        string `form:"q"`
}

func ListActivities(c *gin.Context) {
	var req ListActivitiesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	list, err := manager.List(c.Request.Context(), model.Category(req.Category), req.Q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, toViews(list))
}

func GetActivity(c *gin.Context) {
	a, found, err := manager.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		response.Fail(c, response.ErrNotFound.WithTips("活动不存在或已结束"))
		return
	}
	response.Success(c, toView(a))
}

// MyActivities 当前用户发起的与参与的活动
func MyActivities(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	res, err := manager.GetForUser(c.Request.Context(), user.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"organized": toViews(res.Organized),
		"joined":    toViews(res.Joined),
	})
}

func CreateActivity(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req lifecycle.CreateFields
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	a, err := manager.Create(c.Request.Context(), req, user.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, toView(a))
}

// UpdateActivity 组织者部分更新活动，未传的字段保持不变
func UpdateActivity(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req lifecycle.Patch
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定更新活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	res, err := manager.Edit(c.Request.Context(), c.Param("id"), req, user.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	if len(res.FanoutFailures) > 0 {
		log.Warn("部分参与者未收到更新通知", "activity_id", c.Param("id"), "failed", len(res.FanoutFailures), "notified", res.Notified)
	}
	response.Success(c, gin.H{
		"activity":        toView(res.Activity),
		"notified":        res.Notified,
		"notify_failures": len(res.FanoutFailures),
	})
}

func JoinActivity(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")
	ctx := c.Request.Context()

	joined, err := manager.Join(ctx, id, user.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	a, found, err := manager.GetByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		response.Fail(c, response.ErrNotFound)
		return
	}
	if joined && a.Category == model.CategoryGroupBuy {
		notifyGroupBuyJoined(ctx, a, user.UserID)
	}
	response.Success(c, gin.H{
		"joined":   joined,
		"activity": toView(a),
	})
}

func LeaveActivity(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id := c.Param("id")

	if err := manager.Leave(c.Request.Context(), id, user.UserID); err != nil {
		fail(c, err)
		return
	}
	a, found, err := manager.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		response.Fail(c, response.ErrNotFound)
		return
	}
	response.Success(c, toView(a))
}
