package dto

// DeployRequest 站点发布请求
type DeployRequest struct {
	// HTML 待发布的完整站点文档
	HTML string `json:"html" binding:"required"`
	// Title 站点标题；新建空间时必填
	Title string `json:"title"`
	// SpaceID 已有空间标识（namespace/slug）；为空时新建
	SpaceID string `json:"space_id"`
	// Prompts 会话中产生本文档的全部指令
	Prompts []string `json:"prompts"`
}

// DeployResponse 站点发布响应
type DeployResponse struct {
	SpaceID string `json:"space_id"`
	URL     string `json:"url"`
}
