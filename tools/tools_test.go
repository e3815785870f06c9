package tools

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPassword(t *testing.T) {
	hash := PasswordEncrypt("abc12345!")
	require.NotEqual(t, "abc12345!", hash)
	require.True(t, PasswordCompare("abc12345!", hash))
	require.False(t, PasswordCompare("abc12345?", hash))
}

func TestGetPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=3&page_size=20", nil)
	offset, limit := GetPage(c)
	require.Equal(t, 40, offset)
	require.Equal(t, 20, limit)

	c.Request = httptest.NewRequest("GET", "/?page=x", nil)
	offset, limit = GetPage(c)
	require.Equal(t, 0, offset)
	require.Equal(t, 30, limit)
}

type row struct {
	Name   string `excel:"姓名"`
	Score  int    `excel:"信誉分"`
	Secret string `excel:"-"`
}

func TestExportToExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, ExportToExcel(f, "名单", []row{{Name: "Alice", Score: 98, Secret: "x"}}))

	header, err := f.GetCellValue("名单", "A1")
	require.NoError(t, err)
	require.Equal(t, "姓名", header)
	v, err := f.GetCellValue("名单", "B2")
	require.NoError(t, err)
	require.Equal(t, "98", v)
	v, err = f.GetCellValue("名单", "C1")
	require.NoError(t, err)
	require.Empty(t, v)

	require.Error(t, ExportToExcel(f, "", 1))
}
