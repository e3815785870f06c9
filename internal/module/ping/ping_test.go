package ping

import (
	"coucou-server/internal/global/database"
	"coucou-server/internal/storage/storagetest"
	"coucou-server/test"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	database.DB = storagetest.NewDB(t)
	m := &ModulePing{}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group(""))

	var res map[string]string
	resp, _ := test.DoRequest(t, r, http.MethodGet, "/ping", nil, "")
	test.NoError(t, resp)
	test.DecodeData(t, resp, &res)
	assert.Equal(t, "pong", res["message"])
	assert.Equal(t, "ok", res["database"])
}
