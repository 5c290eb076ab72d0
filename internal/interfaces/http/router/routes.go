// Package router 提供 HTTP 路由配置
package router

import (
	"pagesmith-ai-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	providerHandler *handler.ProviderHandler,
	generateHandler *handler.GenerateHandler,
	deployHandler *handler.DeployHandler,
	remixHandler *handler.RemixHandler,
) {
	// 提供商目录
	v1.GET("/providers", providerHandler.List)

	// 站点生成（SSE）
	v1.POST("/generate", generateHandler.Generate)

	// 站点发布
	v1.POST("/deploy", deployHandler.Deploy)

	// Remix 既有站点
	v1.GET("/remix/:namespace/:slug", remixHandler.Resolve)
}
