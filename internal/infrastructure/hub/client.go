// Package hub 提供制品仓库（Hub）HTTP 客户端
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"pagesmith-ai-api/internal/application/deploy"
	"pagesmith-ai-api/internal/application/remix"
	"pagesmith-ai-api/internal/config"
)

const staticSDK = "static"

// Client 封装 Hub 的仓库管理与文件读写 API
// 同时服务部署流水线与 Remix 解析器。
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type whoAmIResponse struct {
	Name string `json:"name"`
}

type userinfoResponse struct {
	PreferredUsername string `json:"preferred_username"`
}

type createRepoRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	SDK          string `json:"sdk"`
	Private      bool   `json:"private"`
}

type spaceInfoResponse struct {
	Author  string `json:"author"`
	Private bool   `json:"private"`
	SDK     string `json:"sdk"`
}

func NewClient(cfg *config.HubConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WhoAmI 解析凭证对应的命名空间
func (c *Client) WhoAmI(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/whoami-v2", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create whoami request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var resp whoAmIResponse
	if err := c.doJSON(req, &resp); err != nil {
		return "", fmt.Errorf("whoami request failed: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("whoami response has no name")
	}
	return resp.Name, nil
}

// Userinfo 解析凭证对应的用户名
func (c *Client) Userinfo(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/oauth/userinfo", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var resp userinfoResponse
	if err := c.doJSON(req, &resp); err != nil {
		return "", fmt.Errorf("userinfo request failed: %w", err)
	}
	if resp.PreferredUsername == "" {
		return "", fmt.Errorf("userinfo response has no username")
	}
	return resp.PreferredUsername, nil
}

// CreateSpace 创建静态站点空间
func (c *Client) CreateSpace(ctx context.Context, token, spaceID string) error {
	namespace, name, ok := splitSpaceID(spaceID)
	if !ok {
		return fmt.Errorf("invalid space id: %s", spaceID)
	}

	body, err := json.Marshal(&createRepoRequest{
		Type:         "space",
		Name:         name,
		Organization: namespace,
		SDK:          staticSDK,
		Private:      false,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/repos/create", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create repo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("create space failed: %w", err)
	}
	return nil
}

// UploadFiles 将整个文件集作为单次提交上传
func (c *Client) UploadFiles(ctx context.Context, token, spaceID string, files []deploy.File) error {
	if len(files) == 0 {
		return fmt.Errorf("no files to upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Path)
		if err != nil {
			return fmt.Errorf("failed to create form file %s: %w", f.Path, err)
		}
		if _, err := part.Write([]byte(f.Content)); err != nil {
			return fmt.Errorf("failed to write form file %s: %w", f.Path, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload body: %w", err)
	}

	url := fmt.Sprintf("%s/api/spaces/%s/upload/main", c.endpoint, spaceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", w.FormDataContentType())

	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("upload files failed: %w", err)
	}
	return nil
}

// SpaceInfo 获取空间元数据
func (c *Client) SpaceInfo(ctx context.Context, spaceID string) (*remix.SpaceInfo, error) {
	url := fmt.Sprintf("%s/api/spaces/%s", c.endpoint, spaceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create space info request: %w", err)
	}

	var resp spaceInfoResponse
	if err := c.doJSON(req, &resp); err != nil {
		return nil, fmt.Errorf("space info request failed: %w", err)
	}
	return &remix.SpaceInfo{
		SDK:     resp.SDK,
		Private: resp.Private,
		Author:  resp.Author,
	}, nil
}

// RawFile 获取空间内指定路径的原始文件内容
func (c *Client) RawFile(ctx context.Context, spaceID, path string) (string, error) {
	url := fmt.Sprintf("%s/spaces/%s/raw/main/%s", c.endpoint, spaceID, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create raw file request: %w", err)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("raw file request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", fmt.Errorf("raw file request failed: status=%d", httpResp.StatusCode)
	}

	content, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read raw file: %w", err)
	}
	return string(content), nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return fmt.Errorf("status=%d", httpResp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(httpResp.Body).Decode(out)
}

func splitSpaceID(spaceID string) (namespace, name string, ok bool) {
	idx := strings.Index(spaceID, "/")
	if idx <= 0 || idx == len(spaceID)-1 {
		return "", "", false
	}
	return spaceID[:idx], spaceID[idx+1:], true
}

var (
	_ deploy.HubClient = (*Client)(nil)
	_ remix.HubReader  = (*Client)(nil)
)
