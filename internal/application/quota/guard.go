// Package quota 提供匿名生成配额能力
package quota

import (
	"fmt"
	"sync"
)

// ExceededError 表示客户端的免费生成次数已用尽
type ExceededError struct {
	ClientID string
	Limit    int
}

func (e ExceededError) Error() string {
	return fmt.Sprintf("anonymous generation quota exceeded: client=%s limit=%d", e.ClientID, e.Limit)
}

// Guard 匿名生成配额守卫
// 进程内软限制：计数只在进程重启时清零，不做分布式精确限流。
// 它保护的是共享的匿名默认通道，不是安全边界。
type Guard struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int
}

// NewGuard 创建配额守卫
func NewGuard(limit int) *Guard {
	if limit <= 0 {
		limit = 2
	}
	return &Guard{
		counts: make(map[string]int),
		limit:  limit,
	}
}

// Admit 判定一次生成请求是否放行
// 已登录请求始终放行且不计数；匿名请求按客户端网络标识累加，
// 超过阈值后返回 ExceededError。
func (g *Guard) Admit(clientID string, authenticated bool) error {
	if authenticated {
		return nil
	}

	g.mu.Lock()
	g.counts[clientID]++
	count := g.counts[clientID]
	g.mu.Unlock()

	if count > g.limit {
		return ExceededError{ClientID: clientID, Limit: g.limit}
	}
	return nil
}
