// Package remix 提供已发布站点的回取能力
package remix

import (
	"context"

	"golang.org/x/sync/singleflight"

	"pagesmith-ai-api/internal/application/deploy"
	apperrors "pagesmith-ai-api/pkg/errors"
	"pagesmith-ai-api/pkg/metrics"
)

// staticSDK 可混制空间要求的 SDK 类型
const staticSDK = "static"

// SpaceInfo 空间元数据
type SpaceInfo struct {
	SDK     string
	Private bool
	Author  string
}

// HubReader 定义混制解析器对制品仓库的最小依赖（port）
type HubReader interface {
	// SpaceInfo 获取空间元数据；空间不存在时返回错误
	SpaceInfo(ctx context.Context, spaceID string) (*SpaceInfo, error)
	// RawFile 获取空间内指定路径的原始文件内容
	RawFile(ctx context.Context, spaceID, path string) (string, error)
	// Userinfo 解析凭证对应的用户名；凭证无效时返回错误
	Userinfo(ctx context.Context, token string) (string, error)
}

// Result 一次混制解析的结果
type Result struct {
	// HTML 剥离署名后的文档
	HTML string `json:"html"`
	// IsOwner 当前调用者是否为空间作者
	IsOwner bool `json:"is_owner"`
	// SpaceID 来源空间标识
	SpaceID string `json:"space_id"`
}

// Resolver 混制解析器
type Resolver struct {
	hub   HubReader
	group singleflight.Group
}

// NewResolver 创建混制解析器
func NewResolver(hub HubReader) *Resolver {
	return &Resolver{hub: hub}
}

// fetched 去重取回的中间结果
type fetched struct {
	html   string
	author string
}

// Resolve 回取一个已发布站点
// 仅公开的静态空间可混制；私有、缺失或非静态空间一律报 NotFound。
// 对同一空间的并发取回做 singleflight 去重。
func (r *Resolver) Resolve(ctx context.Context, spaceID, token string) (*Result, error) {
	v, err, _ := r.group.Do(spaceID, func() (any, error) {
		return r.fetch(ctx, spaceID)
	})
	if err != nil {
		metrics.SiteRemixTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}
	f := v.(*fetched)

	isOwner := false
	if token != "" {
		username, userErr := r.hub.Userinfo(ctx, token)
		if userErr == nil && username != "" && username == f.author {
			isOwner = true
		}
	}

	metrics.SiteRemixTotal.WithLabelValues("ok").Inc()
	return &Result{
		HTML:    f.html,
		IsOwner: isOwner,
		SpaceID: spaceID,
	}, nil
}

// fetch 校验空间并取回剥离署名后的文档
func (r *Resolver) fetch(ctx context.Context, spaceID string) (*fetched, error) {
	info, err := r.hub.SpaceInfo(ctx, spaceID)
	if err != nil {
		return nil, apperrors.ErrSpaceNotFound
	}
	if info.Private || info.SDK != staticSDK {
		return nil, apperrors.ErrSpaceNotFound
	}

	html, err := r.hub.RawFile(ctx, spaceID, deploy.EntryFile)
	if err != nil {
		return nil, apperrors.ErrSpaceNotFound
	}

	return &fetched{
		html:   deploy.StripAttribution(html, spaceID),
		author: info.Author,
	}, nil
}
