package dto

// RemixResponse Remix 解析响应
type RemixResponse struct {
	HTML    string `json:"html"`
	IsOwner bool   `json:"is_owner"`
	SpaceID string `json:"space_id"`
}
