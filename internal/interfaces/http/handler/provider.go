// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"pagesmith-ai-api/internal/application/generation"
	"pagesmith-ai-api/internal/interfaces/http/dto"
)

// ProviderHandler 推理提供商目录处理器
type ProviderHandler struct {
	registry *generation.Registry
}

// NewProviderHandler 创建提供商目录处理器
func NewProviderHandler(registry *generation.Registry) *ProviderHandler {
	return &ProviderHandler{registry: registry}
}

// List 列出全部可用提供商
func (h *ProviderHandler) List(c *gin.Context) {
	providers := h.registry.All()

	resp := make([]dto.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		resp = append(resp, dto.ProviderResponse{
			Key:               p.Key,
			Name:              p.Name,
			Model:             p.Model,
			MaxTokens:         p.MaxTokens,
			SupportsMaxTokens: p.SupportsMaxTokens,
		})
	}
	dto.Success(c, resp)
}
