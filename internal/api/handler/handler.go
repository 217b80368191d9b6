package handler

import (
	"net/http"
	"strconv"

	"film-vault/internal/api/response"
	"film-vault/internal/geoip"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "Invalid request"

// parseIDParam 解析路径中的正整数 ID
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// clientIP 客户端 IP，只在对端是受信代理时才采用 X-Forwarded-For 的第一跳
func clientIP(c *gin.Context) string {
	return geoip.NormalizeIP(c.ClientIP())
}

// requirePOST 非 POST 请求返回 400，调用方直接 return
func requirePOST(c *gin.Context) bool {
	if c.Request.Method != http.MethodPost {
		response.BadRequest(c, msgInvalidRequest)
		return false
	}
	return true
}
