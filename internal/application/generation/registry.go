// Package generation 提供站点生成编排能力
package generation

import (
	"pagesmith-ai-api/internal/domain/entity"
)

// defaultProviderKey 未指定或无法识别提供商时使用的默认项
const defaultProviderKey = "fireworks-ai"

// Registry 推理提供商注册表
// 静态目录，进程启动时构建一次，之后只读。
type Registry struct {
	providers map[string]*entity.Provider
	ordered   []*entity.Provider
}

// NewRegistry 创建提供商注册表
func NewRegistry() *Registry {
	catalog := []*entity.Provider{
		{
			Key:               "fireworks-ai",
			Name:              "Fireworks AI",
			Model:             "accounts/fireworks/models/deepseek-v3",
			MaxTokens:         131072,
			SupportsMaxTokens: true,
		},
		{
			Key:               "nebius",
			Name:              "Nebius AI Studio",
			Model:             "deepseek-ai/DeepSeek-V3",
			MaxTokens:         41000,
			SupportsMaxTokens: true,
		},
		{
			Key:               "sambanova",
			Name:              "SambaNova",
			Model:             "DeepSeek-V3-0324",
			MaxTokens:         8192,
			SupportsMaxTokens: false,
			QuirkyTruncation:  true,
		},
		{
			Key:               "novita",
			Name:              "Novita AI",
			Model:             "deepseek/deepseek_v3",
			MaxTokens:         16000,
			SupportsMaxTokens: true,
		},
	}

	providers := make(map[string]*entity.Provider, len(catalog))
	for _, p := range catalog {
		providers[p.Key] = p
	}

	return &Registry{
		providers: providers,
		ordered:   catalog,
	}
}

// Lookup 按键精确查找提供商
func (r *Registry) Lookup(key string) (*entity.Provider, bool) {
	if key == "" || key == entity.ProviderAuto {
		return nil, false
	}
	p, ok := r.providers[key]
	return p, ok
}

// Resolve 解析提供商选择
// "auto" 或未知键一律回退到默认提供商，解析永不失败。
func (r *Registry) Resolve(key string) *entity.Provider {
	if p, ok := r.Lookup(key); ok {
		return p
	}
	return r.providers[defaultProviderKey]
}

// Default 返回默认提供商
func (r *Registry) Default() *entity.Provider {
	return r.providers[defaultProviderKey]
}

// All 返回目录顺序的全部提供商
func (r *Registry) All() []*entity.Provider {
	out := make([]*entity.Provider, len(r.ordered))
	copy(out, r.ordered)
	return out
}
