package tools

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func PanicOnErr(err error) {
	if err != nil {
		panic(err)
	}
}

// PasswordEncrypt 使用 bcrypt 加密密码
func PasswordEncrypt(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	PanicOnErr(err)
	return string(hash)
}

// PasswordCompare 校验明文密码与加密后的密码是否一致
func PasswordCompare(password, encrypted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password)) == nil
}

// GetPage 从查询参数中读取分页参数，返回 offset 和 limit
func GetPage(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("page_size"))
	if err != nil || limit <= 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, limit
}
