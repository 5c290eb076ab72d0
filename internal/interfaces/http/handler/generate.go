// Package handler 提供 HTTP 请求处理器
package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"pagesmith-ai-api/internal/application/generation"
	"pagesmith-ai-api/internal/interfaces/http/dto"
	"pagesmith-ai-api/internal/interfaces/http/middleware"
	"pagesmith-ai-api/pkg/logger"
)

// GenerateHandler 站点生成处理器
type GenerateHandler struct {
	orchestrator *generation.Orchestrator
}

// NewGenerateHandler 创建站点生成处理器
func NewGenerateHandler(orchestrator *generation.Orchestrator) *GenerateHandler {
	return &GenerateHandler{orchestrator: orchestrator}
}

// Generate 流式生成站点文档
// 通过 SSE 推送模型输出片段；业务错误在流开始前以 JSON 返回。
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	caller := generation.Caller{
		ClientID:      c.GetString(middleware.ContextKeyClientID),
		Authenticated: c.GetBool(middleware.ContextKeyAuthenticated),
	}

	ctx := c.Request.Context()
	reader, provider, err := h.orchestrator.Stream(ctx, &generation.Request{
		Prompt:         req.Prompt,
		PreviousPrompt: req.PreviousPrompt,
		ExistingHTML:   req.HTML,
		Provider:       req.Provider,
	}, caller)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	defer reader.Close()

	// 先读取首个片段：流在产出前失败时仍可返回 JSON 错误
	first, err := reader.Recv()
	if err != nil && err != io.EOF {
		dto.AppError(c, err)
		return
	}
	finished := err == io.EOF

	// SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	contentCh := make(chan string, 8)
	go func() {
		defer close(contentCh)
		if first != "" {
			select {
			case contentCh <- first:
			case <-ctx.Done():
				return
			}
		}
		if finished {
			return
		}
		for {
			frag, recvErr := reader.Recv()
			if recvErr != nil {
				// io.EOF 为正常结束；产出开始后的失败降级为提前结束
				if recvErr != io.EOF {
					logger.Warn(ctx, "generation stream ended early", "error", recvErr)
				}
				return
			}
			select {
			case contentCh <- frag:
			case <-ctx.Done():
				return
			}
		}
	}()

	c.SSEvent("provider", gin.H{
		"key":   provider.Key,
		"model": provider.Model,
	})

	index := 0
	c.Stream(func(w io.Writer) bool {
		select {
		case chunk, ok := <-contentCh:
			if !ok {
				c.SSEvent("done", gin.H{"chunks": index})
				return false
			}
			c.SSEvent("content", gin.H{
				"chunk": chunk,
				"index": index,
			})
			index++
			return true

		case <-ctx.Done():
			// 客户端断开
			return false
		}
	})
}
