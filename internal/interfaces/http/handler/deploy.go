// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pagesmith-ai-api/internal/application/deploy"
	"pagesmith-ai-api/internal/config"
	"pagesmith-ai-api/internal/infrastructure/messaging"
	"pagesmith-ai-api/internal/interfaces/http/dto"
	"pagesmith-ai-api/internal/interfaces/http/middleware"
	"pagesmith-ai-api/pkg/logger"
)

// DeployHandler 站点发布处理器
type DeployHandler struct {
	pipeline    *deploy.Pipeline
	producer    *messaging.Producer
	hubEndpoint string
}

// NewDeployHandler 创建站点发布处理器
// producer 可为 nil（消息发布未启用时）。
func NewDeployHandler(pipeline *deploy.Pipeline, producer *messaging.Producer, cfg *config.Config) *DeployHandler {
	return &DeployHandler{
		pipeline:    pipeline,
		producer:    producer,
		hubEndpoint: strings.TrimRight(cfg.Hub.Endpoint, "/"),
	}
}

// Deploy 将站点文档发布为静态空间
func (h *DeployHandler) Deploy(c *gin.Context) {
	var req dto.DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	token := c.GetString(middleware.ContextKeyHubToken)
	if token == "" {
		dto.Unauthorized(c, "publishing requires a credential")
		return
	}

	isUpdate := req.SpaceID != ""

	spaceID, err := h.pipeline.Deploy(c.Request.Context(), &deploy.Input{
		Document: req.HTML,
		Title:    req.Title,
		SpaceID:  req.SpaceID,
		Prompts:  req.Prompts,
	}, token)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	h.publishDeployed(c.Request.Context(), spaceID, isUpdate, len(req.HTML), len(req.Prompts))

	dto.Created(c, dto.DeployResponse{
		SpaceID: spaceID,
		URL:     fmt.Sprintf("%s/spaces/%s", h.hubEndpoint, spaceID),
	})
}

// publishDeployed 发布部署完成事件，失败只记日志不影响响应
func (h *DeployHandler) publishDeployed(ctx context.Context, spaceID string, isUpdate bool, documentBytes, promptCount int) {
	if h.producer == nil {
		return
	}

	kind := "create"
	if isUpdate {
		kind = "update"
	}
	namespace := spaceID
	if idx := strings.Index(spaceID, "/"); idx > 0 {
		namespace = spaceID[:idx]
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := h.producer.PublishSiteDeployed(pubCtx, &messaging.SiteDeployedMessage{
		SpaceID:       spaceID,
		Namespace:     namespace,
		Kind:          kind,
		DocumentBytes: documentBytes,
		PromptCount:   promptCount,
	}); err != nil {
		logger.Warn(ctx, "failed to publish site deployed event", "space_id", spaceID, "error", err)
	}
}
