// Package entity 定义领域实体
package entity

// Provider 推理提供商描述符
// 进程启动时加载一次，之后只读。
type Provider struct {
	// Key 注册表键（请求中 provider 字段的取值）
	Key string `json:"key"`
	// Name 展示名称
	Name string `json:"name"`
	// Model 后端模型 ID
	Model string `json:"model"`
	// MaxTokens 上下文上限（近似 token 数）
	MaxTokens int `json:"max_tokens"`
	// SupportsMaxTokens 后端是否接受 max_tokens 参数
	SupportsMaxTokens bool `json:"supports_max_tokens"`
	// QuirkyTruncation 后端不会在 </html> 处停止输出，需要手动截断
	QuirkyTruncation bool `json:"quirky_truncation"`
}

// ProviderAuto 表示由服务端选择默认提供商
const ProviderAuto = "auto"
