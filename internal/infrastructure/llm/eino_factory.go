// Package llm 提供模型后端客户端工厂
package llm

import (
	"context"
	"fmt"
	"sync"

	"pagesmith-ai-api/internal/config"
	"pagesmith-ai-api/internal/domain/entity"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
// 按提供商惰性创建并缓存；模型 ID 来自注册表描述符，
// 连接参数（API Key、Base URL）来自配置。
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定提供商的 ChatModel
func (f *EinoFactory) Get(ctx context.Context, provider *entity.Provider) (model.BaseChatModel, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is nil")
	}

	f.mu.RLock()
	m, ok := f.models[provider.Key]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[provider.Key]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[provider.Key]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", provider.Key)
	}

	// 使用 Eino 的 OpenAI 适配器；token 上限由编排层按请求附加
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       provider.Model,
		Temperature: ptrFloat32(float32(providerCfg.Temperature)),
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", provider.Key, err)
	}

	f.models[provider.Key] = chatModel
	return chatModel, nil
}

func ptrFloat32(f float32) *float32 {
	return &f
}
