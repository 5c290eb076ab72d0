// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"pagesmith-ai-api/internal/domain/entity"
)

type GenerationUsageEventRepository interface {
	Create(ctx context.Context, event *entity.GenerationUsageEvent) error
	CountByClient(ctx context.Context, clientID string, startInclusive, endExclusive time.Time) (int64, error)
}
