package test

import (
	"bytes"
	"coucou-server/internal/global/response"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// DoRequest 向 handler 发送 JSON 请求并解析统一响应体，token 为空时不携带 Authorization
func DoRequest(t *testing.T, h http.Handler, method, path string, body any, token string) (resp response.ResponseBody, status int) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp, w.Code
}

// DecodeData 将响应中的 data 转换为具体类型
func DecodeData(t *testing.T, resp response.ResponseBody, out any) {
	t.Helper()
	b, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}
