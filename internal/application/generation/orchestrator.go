package generation

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"pagesmith-ai-api/internal/application/quota"
	"pagesmith-ai-api/internal/application/usage"
	"pagesmith-ai-api/internal/domain/entity"
	apperrors "pagesmith-ai-api/pkg/errors"
	"pagesmith-ai-api/pkg/logger"
	"pagesmith-ai-api/pkg/metrics"
)

// closingMarker 生成完成的文档终止标记
const closingMarker = "</html>"

// Request 一次生成请求
type Request struct {
	// Prompt 本轮提示词，必填
	Prompt string
	// PreviousPrompt 上一轮提示词，可选
	PreviousPrompt string
	// ExistingHTML 作为编辑上下文的既有文档，可选
	ExistingHTML string
	// Provider 提供商选择，"auto" 或注册表键
	Provider string
}

// Caller 请求方标识
type Caller struct {
	// ClientID 客户端网络标识（限额键）
	ClientID string
	// Authenticated 上游鉴权网关是否提供了有效凭证
	Authenticated bool
}

// ChatModelFactory 定义编排层对 LLM ChatModel 的最小依赖（port）
// 由基础设施层提供具体实现。
type ChatModelFactory interface {
	Get(ctx context.Context, provider *entity.Provider) (model.BaseChatModel, error)
}

// Orchestrator 站点生成编排器
type Orchestrator struct {
	registry *Registry
	guard    *quota.Guard
	factory  ChatModelFactory
	recorder *usage.Recorder
}

// NewOrchestrator 创建生成编排器
func NewOrchestrator(registry *Registry, guard *quota.Guard, factory ChatModelFactory, recorder *usage.Recorder) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		guard:    guard,
		factory:  factory,
		recorder: recorder,
	}
}

// Registry 返回提供商注册表
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Stream 发起一次流式生成
// 预检（上下文预算、配额）同步失败；之后片段按后端顺序经
// StreamReader 逐个交付，调用方负责 Close()。
// 流在文档终止标记出现后结束；后端提前结束不视为错误。
func (o *Orchestrator) Stream(ctx context.Context, req *Request, caller Caller) (*schema.StreamReader[string], *entity.Provider, error) {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return nil, nil, apperrors.New(apperrors.CodeInvalidRequest, "prompt is required")
	}

	provider, explicit := o.registry.Lookup(req.Provider)
	if !explicit {
		provider = o.registry.Default()
	}

	// 粗略 token 预算：按字符数估算
	budget := len(req.Prompt) + len(req.PreviousPrompt) + len(req.ExistingHTML)
	if explicit && budget >= provider.MaxTokens {
		return nil, provider, apperrors.Newf(apperrors.CodeContextTooLarge,
			"context is too long for %s (max %d tokens), shorten the prompt or switch provider",
			provider.Name, provider.MaxTokens)
	}

	if err := o.guard.Admit(caller.ClientID, caller.Authenticated); err != nil {
		metrics.QuotaDeniedTotal.Inc()
		return nil, provider, apperrors.Wrap(err, apperrors.CodeQuotaExceeded,
			"free generation limit reached, log in to continue")
	}

	chatModel, err := o.factory.Get(ctx, provider)
	if err != nil {
		return nil, provider, apperrors.Wrap(err, apperrors.CodeLLMProviderError, "provider not configured")
	}

	opts := make([]model.Option, 0, 1)
	if provider.SupportsMaxTokens {
		opts = append(opts, model.WithMaxTokens(provider.MaxTokens))
	}

	backend, err := chatModel.Stream(ctx, BuildMessages(req), opts...)
	if err != nil {
		return nil, provider, classifyBackendError(err)
	}

	out, writer := schema.Pipe[string](8)
	go o.pump(ctx, provider, caller, backend, writer)
	return out, provider, nil
}

// pump 消费后端流并转发片段，处理终止标记与异常截断
func (o *Orchestrator) pump(ctx context.Context, provider *entity.Provider, caller Caller,
	backend *schema.StreamReader[*schema.Message], writer *schema.StreamWriter[string]) {
	defer writer.Close()
	defer backend.Close()

	start := time.Now()
	totalBytes := 0
	terminated := false
	// window 保留跨片段的标记检测窗口
	window := ""

	defer func() {
		status := "truncated"
		if terminated {
			status = "completed"
		}
		metrics.SiteGenerationTotal.WithLabelValues(provider.Key, status).Inc()
		metrics.SiteGenerationDuration.WithLabelValues(provider.Key).Observe(time.Since(start).Seconds())
		metrics.SiteGeneratedBytes.WithLabelValues(provider.Key).Observe(float64(totalBytes))
		o.recorder.Record(context.WithoutCancel(ctx), usage.Input{
			ClientID:      caller.ClientID,
			Authenticated: caller.Authenticated,
			Provider:      provider.Key,
			Model:         provider.Model,
			DocumentBytes: totalBytes,
			Completed:     terminated,
			DurationMs:    int(time.Since(start).Milliseconds()),
		})
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := backend.Recv()
		if errors.Is(err, io.EOF) {
			// 后端在标记出现前结束：按"尽力而为"成功收尾
			return
		}
		if err != nil {
			if totalBytes == 0 {
				writer.Send("", classifyBackendError(err))
			} else {
				// 已有输出在途，无法回溯报告错误，只能提前结束
				logger.Warn(ctx, "model stream failed mid-generation",
					"provider", provider.Key, "error", err.Error())
			}
			return
		}

		fragment := msg.Content
		if fragment == "" {
			continue
		}

		if provider.QuirkyTruncation {
			// 后端不会在标记处停止：把标记之后的内容剪掉再转发
			if idx := strings.Index(fragment, closingMarker); idx >= 0 {
				fragment = fragment[:idx+len(closingMarker)]
				totalBytes += len(fragment)
				terminated = true
				writer.Send(fragment, nil)
				return
			}
			totalBytes += len(fragment)
			if closed := writer.Send(fragment, nil); closed {
				return
			}
			continue
		}

		totalBytes += len(fragment)
		window += fragment
		if closed := writer.Send(fragment, nil); closed {
			return
		}
		if strings.Contains(window, closingMarker) {
			terminated = true
			return
		}
		if n := len(window) - len(closingMarker) + 1; n > 0 {
			window = window[n:]
		}
	}
}

// classifyBackendError 区分计费错误与一般生成失败
func classifyBackendError(err error) *apperrors.AppError {
	if isPaymentRequired(err) {
		return apperrors.Wrap(err, apperrors.CodePaymentRequired,
			"inference credits exhausted, upgrade to continue")
	}
	return apperrors.Wrap(err, apperrors.CodeGenerationFailed, "model call failed")
}

// isPaymentRequired 识别后端的计费/额度类错误
func isPaymentRequired(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "402"):
		return true
	case strings.Contains(msg, "payment required"):
		return true
	case strings.Contains(msg, "exceeded your monthly included credits"):
		return true
	default:
		return false
	}
}
