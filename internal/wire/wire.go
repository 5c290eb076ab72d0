//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"pagesmith-ai-api/internal/application/deploy"
	"pagesmith-ai-api/internal/application/generation"
	"pagesmith-ai-api/internal/application/remix"
	"pagesmith-ai-api/internal/config"
	"pagesmith-ai-api/internal/infrastructure/hub"
	"pagesmith-ai-api/internal/infrastructure/llm"
	"pagesmith-ai-api/internal/interfaces/http/handler"
	"pagesmith-ai-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		DataSet,
		HubSet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// HubSet Hub 客户端提供者集合
var HubSet = wire.NewSet(
	ProvideHubClient,
	wire.Bind(new(deploy.HubClient), new(*hub.Client)),
	wire.Bind(new(remix.HubReader), new(*hub.Client)),
)

// GenerationSet 生成编排提供者集合
var GenerationSet = wire.NewSet(
	generation.NewRegistry,
	llm.NewEinoFactory,
	wire.Bind(new(generation.ChatModelFactory), new(*llm.EinoFactory)),
	ProvideQuotaGuard,
	ProvideUsageRecorder,
	generation.NewOrchestrator,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	deploy.NewPipeline,
	remix.NewResolver,
	handler.NewHealthHandler,
	handler.NewProviderHandler,
	handler.NewGenerateHandler,
	handler.NewDeployHandler,
	handler.NewRemixHandler,
	router.New,
)
