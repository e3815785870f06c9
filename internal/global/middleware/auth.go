package middleware

import (
	"coucou-server/internal/global/jwt"
	"coucou-server/internal/global/response"
	"coucou-server/internal/global/session"
	"strings"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer 令牌，通过后将 *jwt.Claims 写入 payload
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c)
		if err != nil {
			response.Fail(c, err)
			return
		}
		c.Set("payload", claims)
		c.Next()
	}
}

// OptionalAuth 携带有效令牌时写入 payload，未携带时放行
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := authenticate(c); err == nil {
				c.Set("payload", claims)
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context) (*jwt.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, response.ErrTokenInvalid
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, valid := jwt.ParseToken(token)
	if !valid {
		return nil, response.ErrTokenInvalid
	}

	revoked, err := session.Default().IsRevoked(c.Request.Context(), claims.TokenID())
	if err != nil {
		return nil, response.ErrRedis.WithOrigin(err)
	}
	if revoked {
		return nil, response.ErrTokenInvalid
	}
	return claims, nil
}
