// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"pagesmith-ai-api/internal/domain/entity"
	"pagesmith-ai-api/internal/domain/repository"
)

type GenerationUsageEventRepository struct {
	client *Client
}

func NewGenerationUsageEventRepository(client *Client) *GenerationUsageEventRepository {
	return &GenerationUsageEventRepository{client: client}
}

func (r *GenerationUsageEventRepository) Create(ctx context.Context, event *entity.GenerationUsageEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.GenerationUsageEventRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create generation usage event: %w", err)
	}
	return nil
}

func (r *GenerationUsageEventRepository) CountByClient(ctx context.Context, clientID string, startInclusive, endExclusive time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.GenerationUsageEventRepository.CountByClient")
	defer span.End()

	var total int64
	if err := r.client.db.WithContext(ctx).
		Model(&entity.GenerationUsageEvent{}).
		Where("client_id = ? AND created_at >= ? AND created_at < ?", clientID, startInclusive, endExclusive).
		Count(&total).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count generation usage events: %w", err)
	}
	return total, nil
}

var _ repository.GenerationUsageEventRepository = (*GenerationUsageEventRepository)(nil)
