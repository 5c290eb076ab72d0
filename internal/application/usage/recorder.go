// Package usage 提供生成用量记录能力
package usage

import (
	"context"
	"strings"

	"pagesmith-ai-api/internal/domain/entity"
	"pagesmith-ai-api/internal/domain/repository"
	"pagesmith-ai-api/pkg/logger"
)

// Input 一次生成的用量信息
type Input struct {
	ClientID      string
	Authenticated bool
	Provider      string
	Model         string
	DocumentBytes int
	Completed     bool
	DurationMs    int
}

// Recorder 生成用量记录器
// repo 为 nil 时（未启用持久化）所有写入都是空操作。
type Recorder struct {
	repo repository.GenerationUsageEventRepository
}

// NewRecorder 创建用量记录器
func NewRecorder(repo repository.GenerationUsageEventRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Record 记录一次生成
// 写入失败只记日志，不影响生成结果。
func (r *Recorder) Record(ctx context.Context, in Input) {
	if r == nil || r.repo == nil {
		return
	}

	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		clientID = "unknown"
	}

	evt := &entity.GenerationUsageEvent{
		ClientID:      clientID,
		Authenticated: in.Authenticated,
		Provider:      in.Provider,
		Model:         in.Model,
		DocumentBytes: in.DocumentBytes,
		Completed:     in.Completed,
		DurationMs:    in.DurationMs,
	}
	if err := r.repo.Create(ctx, evt); err != nil {
		logger.Warn(ctx, "failed to record generation usage", "error", err.Error())
	}
}
