package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/i18n"
	"github.com/bidmart-admin/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitBodyPeekLimit = 64 << 10

// RateLimitKeyFunc 从请求中提取限流维度
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
// 第 MaxRequests+1 次请求会把计数 key 的有效期延长为 BlockSeconds（大于 0 时）。
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
	// FailOpen 为 true 时 Redis 故障直接放行，否则拒绝请求
	FailOpen bool
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(dimension string) string {
	if r.Prefix == "" {
		return dimension
	}
	return r.Prefix + ":" + dimension
}

// KEYS[1] 计数 key；ARGV: 窗口秒数、上限、封禁秒数。返回 {计数, 剩余 TTL}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if current == tonumber(ARGV[2]) + 1 and tonumber(ARGV[3]) > 0 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return {current, redis.call("TTL", KEYS[1])}
`)

// RateLimiter 基于 Redis 的固定窗口计数器
type RateLimiter struct {
	client *redis.Client
	rule   RateLimitRule
}

// NewRateLimiter 创建限流器；client 为 nil 或规则未启用时所有请求放行
func NewRateLimiter(client *redis.Client, rule RateLimitRule) *RateLimiter {
	return &RateLimiter{client: client, rule: rule}
}

// Allow 记录一次请求并判断是否放行，拒绝时返回需等待的时长
func (l *RateLimiter) Allow(ctx context.Context, dimension string) (bool, time.Duration, error) {
	if l == nil || l.client == nil || !l.rule.enabled() {
		return true, 0, nil
	}
	values, err := rateLimitScript.Run(ctx, l.client,
		[]string{l.rule.key(dimension)},
		l.rule.WindowSeconds, l.rule.MaxRequests, l.rule.BlockSeconds,
	).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(values) < 2 {
		return false, 0, redis.Nil
	}
	if values[0] <= int64(l.rule.MaxRequests) {
		return true, 0, nil
	}
	wait := time.Duration(values[1]) * time.Second
	if wait <= 0 {
		wait = time.Duration(l.rule.WindowSeconds) * time.Second
	}
	return false, wait, nil
}

// RateLimitMiddleware 对匹配的路由应用限流规则
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	limiter := NewRateLimiter(client, rule)
	if keyFunc == nil {
		keyFunc = KeyByIP
	}
	messageKey := strings.TrimSpace(rule.MessageKey)
	if messageKey == "" {
		messageKey = "error.rate_limited"
	}
	return func(c *gin.Context) {
		dimension := strings.TrimSpace(keyFunc(c))
		if dimension == "" {
			dimension = c.ClientIP()
		}
		allowed, wait, err := limiter.Allow(c.Request.Context(), dimension)
		if err != nil {
			logger.Warnw("rate_limit_check_failed", "prefix", rule.Prefix, "fail_open", rule.FailOpen, "error", err)
			if rule.FailOpen {
				c.Next()
				return
			}
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if !allowed {
			seconds := int(wait / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), messageKey, seconds))
			c.Abort()
			return
		}
		c.Next()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 字段（小写）+ IP 限流，字段缺失时退化为 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONString(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONString 读取请求体中的字符串字段，读取后恢复 Body 供后续绑定
func peekJSONString(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, rateLimitBodyPeekLimit))
	rest := c.Request.Body
	c.Request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(body), rest), rest}
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
