package response

import (
	"coucou-server/config"
	"coucou-server/internal/global/sentry"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const codeSuccess int32 = 200

var (
	ErrInvalidRequest  = newError(40000, "请求参数错误")
	ErrInvalidPassword = newError(40001, "密码错误")
	ErrTokenInvalid    = newError(40100, "登录状态无效，请重新登录")
	ErrUnauthorized    = newError(40101, "未登录或权限不足")
	ErrForbidden       = newError(40300, "无权限执行该操作")
	ErrNotFound        = newError(40400, "资源不存在")
	ErrAlreadyExists   = newError(40900, "资源已存在")
	ErrServerInternal  = newError(50000, "服务器内部错误")
	ErrDatabase        = newError(50001, "数据库错误")
	ErrRedis           = newError(50002, "缓存服务错误")
	ErrStorage         = newError(50003, "文件存储错误")
)

// HTTPStatus 由错误码推导 HTTP 状态码
func (e *Error) HTTPStatus() int {
	status := int(e.Code) / 100
	if status < 400 || status >= 600 {
		return http.StatusInternalServerError
	}
	return status
}

func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: codeSuccess, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Fail 输出错误响应；非 *Error 类型的错误按服务器内部错误处理
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)
	sentry.CaptureException(c, e)

	body := ResponseBody{Code: e.Code, Msg: e.Message}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.Set(ResponseContextKey, body)
	c.AbortWithStatusJSON(e.HTTPStatus(), body)
}

// Recovery 捕获 panic 并返回服务器内部错误，需在 defer 中调用
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		if config.Get().Mode == config.ModeDebug {
			debug.PrintStack()
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
	}
}
