package jwt

import (
	"coucou-server/config"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

type Payload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

// TokenID 令牌唯一标识，注销时写入吊销列表
func (c *Claims) TokenID() string {
	return c.Id
}

// ExpiresAtTime 令牌过期时间
func (c *Claims) ExpiresAtTime() time.Time {
	return time.Unix(c.StandardClaims.ExpiresAt, 0)
}

func CreateToken(payload Payload) string {
	now := time.Now()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(config.Get().JWT.AccessExpire) * time.Second).Unix(),
			Issuer:    "coucou-server",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.Get().JWT.AccessSecret))
	if err != nil {
		panic(err)
	}
	return token
}

// ParseToken 解析并校验令牌，签名错误或已过期时 valid 为 false
func ParseToken(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}
