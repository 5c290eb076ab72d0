package dto

// GenerateRequest 站点生成请求
type GenerateRequest struct {
	// Prompt 用户指令
	Prompt string `json:"prompt" binding:"required"`
	// PreviousPrompt 上一轮指令（迭代修改时携带）
	PreviousPrompt string `json:"previous_prompt"`
	// HTML 当前站点文档（迭代修改时携带）
	HTML string `json:"html"`
	// Provider 推理提供商 key；空或 "auto" 时自动选择
	Provider string `json:"provider"`
}

// ProviderResponse 提供商描述
type ProviderResponse struct {
	Key               string `json:"key"`
	Name              string `json:"name"`
	Model             string `json:"model"`
	MaxTokens         int    `json:"max_tokens"`
	SupportsMaxTokens bool   `json:"supports_max_tokens"`
}
