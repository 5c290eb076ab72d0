// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"pagesmith-ai-api/internal/application/quota"
	"pagesmith-ai-api/internal/application/usage"
	"pagesmith-ai-api/internal/config"
	"pagesmith-ai-api/internal/domain/repository"
	"pagesmith-ai-api/internal/infrastructure/hub"
	"pagesmith-ai-api/internal/infrastructure/messaging"
	"pagesmith-ai-api/internal/infrastructure/persistence/postgres"
	"pagesmith-ai-api/internal/infrastructure/persistence/redis"
	"pagesmith-ai-api/internal/interfaces/http/middleware"
	"pagesmith-ai-api/pkg/logger"

	"github.com/google/wire"
)

// DataSet 数据层提供者集合
// postgres 与 redis 都是可选依赖：未启用相关特性或不可达时服务降级启动。
var DataSet = wire.NewSet(
	ProvidePostgresClientOptional,
	ProvideRedisClientOptional,
	ProvideUsageRepositoryOptional,
	ProvideRateLimiterOptional,
	ProvideMessagingProducerOptional,
)

// ProvidePostgresClientOptional 提供 PostgreSQL 客户端
// 用量记录未启用或数据库不可达时返回 nil。
func ProvidePostgresClientOptional(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	if !cfg.Features.UsageRecording {
		return nil, func() {}, nil
	}
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Warn(ctx, "postgres not available, usage recording disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional 提供 Redis 客户端
// 限流与消息发布都未启用、或 Redis 不可达时返回 nil。
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.RateLimit.Enabled && !cfg.Messaging.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, rate limiting and messaging disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideUsageRepositoryOptional 提供用量事件仓储
func ProvideUsageRepositoryOptional(client *postgres.Client) repository.GenerationUsageEventRepository {
	if client == nil {
		return nil
	}
	return postgres.NewGenerationUsageEventRepository(client)
}

// ProvideUsageRecorder 提供用量记录器（仓储缺失时为空操作）
func ProvideUsageRecorder(repo repository.GenerationUsageEventRepository) *usage.Recorder {
	return usage.NewRecorder(repo)
}

// ProvideRateLimiterOptional 提供限流器
func ProvideRateLimiterOptional(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideMessagingProducerOptional 提供消息生产者
func ProvideMessagingProducerOptional(cfg *config.Config, client *redis.Client) *messaging.Producer {
	if client == nil || !cfg.Messaging.Enabled {
		return nil
	}
	return messaging.NewProducer(client.Redis(), cfg.Messaging.StreamMaxLen)
}

// ProvideHubClient 提供 Hub 客户端
func ProvideHubClient(cfg *config.Config) *hub.Client {
	return hub.NewClient(&cfg.Hub)
}

// ProvideQuotaGuard 提供匿名调用限额守卫
func ProvideQuotaGuard(cfg *config.Config) *quota.Guard {
	return quota.NewGuard(cfg.Quota.AnonymousLimit)
}
