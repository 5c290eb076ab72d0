// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"pagesmith-ai-api/internal/application/remix"
	"pagesmith-ai-api/internal/interfaces/http/dto"
	"pagesmith-ai-api/internal/interfaces/http/middleware"
)

// RemixHandler Remix 解析处理器
type RemixHandler struct {
	resolver *remix.Resolver
}

// NewRemixHandler 创建 Remix 解析处理器
func NewRemixHandler(resolver *remix.Resolver) *RemixHandler {
	return &RemixHandler{resolver: resolver}
}

// Resolve 解析既有空间为可编辑文档
func (h *RemixHandler) Resolve(c *gin.Context) {
	namespace := c.Param("namespace")
	slug := c.Param("slug")
	if namespace == "" || slug == "" {
		dto.BadRequest(c, "namespace and slug are required")
		return
	}
	spaceID := namespace + "/" + slug

	token := c.GetString(middleware.ContextKeyHubToken)

	result, err := h.resolver.Resolve(c.Request.Context(), spaceID, token)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.RemixResponse{
		HTML:    result.HTML,
		IsOwner: result.IsOwner,
		SpaceID: result.SpaceID,
	})
}
