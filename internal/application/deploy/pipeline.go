// Package deploy 提供站点发布流水线
package deploy

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	apperrors "pagesmith-ai-api/pkg/errors"
	"pagesmith-ai-api/pkg/logger"
	"pagesmith-ai-api/pkg/metrics"
)

// 制品文件集的固定文件名
const (
	// EntryFile 站点入口文件
	EntryFile = "index.html"
	// PromptLogFile 提示词日志
	PromptLogFile = "prompts.txt"
	// ManifestFile 空间清单（仅新建空间）
	ManifestFile = "README.md"
)

// maxSlugLen slug 长度上限
const maxSlugLen = 96

// spaceColors 清单配色的固定调色板
var spaceColors = []string{"red", "yellow", "green", "blue", "indigo", "purple", "pink", "gray"}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// File 上传到空间的一个命名文件
type File struct {
	Path    string
	Content []byte
}

// HubClient 定义发布流水线对制品仓库的最小依赖（port）
type HubClient interface {
	// WhoAmI 解析凭证对应的命名空间
	WhoAmI(ctx context.Context, token string) (string, error)
	// CreateSpace 创建静态站点空间
	CreateSpace(ctx context.Context, token, spaceID string) error
	// UploadFiles 单次批量上传整个文件集
	UploadFiles(ctx context.Context, token, spaceID string, files []File) error
}

// Input 一次发布请求
type Input struct {
	// Document 已生成的 HTML 文档，必填
	Document string
	// Title 新空间的标题（与 SpaceID 二选一）
	Title string
	// SpaceID 复用的既有空间标识
	SpaceID string
	// Prompts 生成该文档的提示词历史
	Prompts []string
}

// Pipeline 站点发布流水线
type Pipeline struct {
	hub HubClient
}

// NewPipeline 创建发布流水线
func NewPipeline(hub HubClient) *Pipeline {
	return &Pipeline{hub: hub}
}

// Deploy 发布站点，返回空间标识
// 新建空间时派生 {namespace}/{slug} 并生成清单；复用空间时跳过清单。
// 文件集（入口文件 + 提示词日志 + 可选清单）在一次批量调用中上传，
// 不建模部分成功状态。
func (p *Pipeline) Deploy(ctx context.Context, in *Input, token string) (string, error) {
	if in == nil || strings.TrimSpace(in.Document) == "" {
		return "", apperrors.New(apperrors.CodeInvalidRequest, "document is required")
	}
	spaceID := strings.TrimSpace(in.SpaceID)
	if spaceID == "" && strings.TrimSpace(in.Title) == "" {
		return "", apperrors.New(apperrors.CodeInvalidRequest, "either title or space_id is required")
	}

	kind := "existing"
	var manifest string

	if spaceID == "" {
		kind = "new"
		namespace, err := p.hub.WhoAmI(ctx, token)
		if err != nil {
			metrics.SiteDeployTotal.WithLabelValues(kind, "error").Inc()
			return "", apperrors.Wrap(err, apperrors.CodeDeploymentFailed, "failed to resolve namespace")
		}
		spaceID = namespace + "/" + Slugify(in.Title)

		if err := p.hub.CreateSpace(ctx, token, spaceID); err != nil {
			metrics.SiteDeployTotal.WithLabelValues(kind, "error").Inc()
			return "", apperrors.Wrap(err, apperrors.CodeDeploymentFailed, "failed to create space")
		}
		manifest = buildManifest(in.Title)
	}

	document := InjectAttribution(in.Document, spaceID)

	files := []File{
		{Path: EntryFile, Content: []byte(document)},
		{Path: PromptLogFile, Content: []byte(strings.Join(in.Prompts, "\n"))},
	}
	if manifest != "" {
		files = append(files, File{Path: ManifestFile, Content: []byte(manifest)})
	}

	if err := p.hub.UploadFiles(ctx, token, spaceID, files); err != nil {
		metrics.SiteDeployTotal.WithLabelValues(kind, "error").Inc()
		return "", apperrors.Wrap(err, apperrors.CodeDeploymentFailed, "failed to upload files")
	}

	metrics.SiteDeployTotal.WithLabelValues(kind, "ok").Inc()
	logger.Info(ctx, "site deployed", "space_id", spaceID, "kind", kind, "files", len(files))
	return spaceID, nil
}

// Slugify 把标题转换为空间 slug
// 小写，非字母数字压缩为单个连字符，去掉首尾连字符，截断到 96 字符。
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return slug
}

// buildManifest 生成新空间的清单文本
// 两个配色从调色板中独立随机选取。
func buildManifest(title string) string {
	colorFrom := spaceColors[rand.IntN(len(spaceColors))]
	colorTo := spaceColors[rand.IntN(len(spaceColors))]
	return fmt.Sprintf(`---
title: %s
emoji: 🐳
colorFrom: %s
colorTo: %s
sdk: static
pinned: false
tags:
  - pagesmith
---
`, title, colorFrom, colorTo)
}
