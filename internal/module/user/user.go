package user

import (
	"coucou-server/internal/global/context"
	"coucou-server/internal/global/jwt"
	"coucou-server/internal/global/response"
	"coucou-server/internal/global/session"
	"coucou-server/internal/model"
	"coucou-server/internal/storage"
	"coucou-server/tools"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Profile 返回给客户端的用户资料
type Profile struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	Avatar      string            `json:"avatar"`
	CreditScore int               `json:"credit_score"`
	CreditLevel model.CreditLevel `json:"credit_level"`
}

func profileOf(u *model.User) Profile {
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Avatar:      u.Avatar,
		CreditScore: u.CreditScore,
		CreditLevel: model.LevelOf(u.CreditScore),
	}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Register 邮箱注册，成功后直接返回令牌
func Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定注册请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if err := validatePasswordStrength(req.Password); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	user := &model.User{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    tools.PasswordEncrypt(req.Password),
		Name:        strings.TrimSpace(req.Name),
		CreditScore: model.DefaultCreditScore,
	}
	err := store.CreateUser(c.Request.Context(), user)
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		response.Fail(c, response.ErrAlreadyExists.WithTips("邮箱已注册"))
		return
	case err != nil:
		log.Error("创建用户失败", "error", err, "email", user.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户注册成功", "user_id", user.ID)
	response.Success(c, gin.H{
		"token": jwt.CreateToken(jwt.Payload{UserID: user.ID, Name: user.Name}),
		"user":  profileOf(user),
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := store.GetUserByEmail(c.Request.Context(), email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Warn("用户不存在", "email", email)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "user_id", user.ID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功", "user_id", user.ID)
	response.Success(c, gin.H{
		"token": jwt.CreateToken(jwt.Payload{UserID: user.ID, Name: user.Name}),
		"user":  profileOf(user),
	})
}

// Logout 吊销当前令牌，未配置 Redis 时令牌到期后自然失效
func Logout(c *gin.Context) {
	claims, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	if err := session.Default().Revoke(c.Request.Context(), claims.TokenID(), claims.ExpiresAtTime()); err != nil {
		log.Error("吊销令牌失败", "error", err, "user_id", claims.UserID)
		response.Fail(c, response.ErrRedis.WithOrigin(err))
		return
	}
	response.Success(c)
}

// currentUser 读取令牌对应的用户，失败时已写入响应
func currentUser(c *gin.Context) (*model.User, bool) {
	claims, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	user, err := store.GetUser(c.Request.Context(), claims.UserID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.Fail(c, response.ErrTokenInvalid)
		return nil, false
	case err != nil:
		log.Error("数据库查询失败", "error", err, "user_id", claims.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return user, true
}

func Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.Success(c, profileOf(user))
}

type profileReq struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile 修改昵称或头像，未传的字段保持不变
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updates := make(map[string]any)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			response.Fail(c, response.ErrInvalidRequest.WithTips("昵称不能为空"))
			return
		}
		updates["name"] = name
		user.Name = name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
		user.Avatar = *req.Avatar
	}
	if len(updates) > 0 {
		if err := store.UpdateUser(c.Request.Context(), user.ID, updates); err != nil {
			log.Error("更新用户资料失败", "error", err, "user_id", user.ID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}
	response.Success(c, profileOf(user))
}

type passwordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req passwordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		response.Fail(c, response.ErrInvalidPassword)
		return
	}
	if err := validatePasswordStrength(req.NewPassword); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	if err := store.UpdateUser(c.Request.Context(), user.ID, map[string]any{
		"password": tools.PasswordEncrypt(req.NewPassword),
	}); err != nil {
		log.Error("修改密码失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("用户修改密码", "user_id", user.ID)
	response.Success(c)
}

// Stats 发起与参与的活动数，参与数包含自己发起的活动
func Stats(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := store.GetUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	started, err := store.CountOrganized(ctx, id)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	joined, err := store.CountJoined(ctx, id)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"started": started,
		"joined":  joined,
	})
}

type creditLevelReq struct {
	Score int `form:"score"`
}

// GetCreditLevel 查询分数对应的信誉等级及完整等级表
func GetCreditLevel(c *gin.Context) {
	var req creditLevelReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"level":  model.LevelOf(req.Score),
		"levels": model.CreditLevels,
	})
}
