// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strings"

	"pagesmith-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyHubToken Hub 访问令牌
	ContextKeyHubToken = "hub_token"
	// ContextKeyClientID 调用方标识（来源 IP）
	ContextKeyClientID = "client_id"
	// ContextKeyAuthenticated 是否携带凭证
	ContextKeyAuthenticated = "authenticated"
)

// Identity 调用方身份提取中间件
// 凭证由外部身份系统签发与校验，这里只提取并透传；
// 未携带凭证的调用按来源 IP 计为匿名调用方。
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))

		c.Set(ContextKeyHubToken, token)
		c.Set(ContextKeyClientID, c.ClientIP())
		c.Set(ContextKeyAuthenticated, token != "")

		ctx := logger.WithContext(c.Request.Context(), logger.ClientIPKey, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
