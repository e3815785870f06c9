package activity

import (
	"coucou-server/internal/global/response"
	"coucou-server/internal/module/activity/lifecycle"
	"errors"

	"github.com/gin-gonic/gin"
)

var fieldTips = map[string]string{
	"Title":           "标题不能为空",
	"Location":        "地点不能为空",
	"Time":            "活动时间不能为空",
	"MaxParticipants": "人数上限至少为 2",
	"Category":        "活动分类不合法",
	"Tag":             "标签过长",
	"Address":         "地址过长",
	"CostType":        "费用类型过长",
	"CostDetail":      "费用说明过长",
}

// fail 将生命周期错误映射为统一响应
func fail(c *gin.Context, err error) {
	var le *lifecycle.Error
	if !errors.As(err, &le) {
		log.Error("活动操作失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	switch le.Kind {
	case lifecycle.KindValidation:
		e := response.ErrInvalidRequest
		if tip, ok := fieldTips[le.Field]; ok {
			e = e.WithTips(tip)
		}
		response.Fail(c, e.WithOrigin(err))
	case lifecycle.KindNotFound:
		response.Fail(c, response.ErrNotFound.WithOrigin(err))
	case lifecycle.KindForbidden:
		response.Fail(c, response.ErrForbidden.WithOrigin(err))
	default:
		log.Error("活动数据读写失败", "op", le.Op, "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
	}
}
