package rules

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldErrors 表单字段 -> 错误信息，所有失败项一并返回
type FieldErrors map[string]string

// Add 记录字段错误，同一字段只保留第一条
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = message
}

// Has 字段是否存在错误
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Empty 是否没有任何错误
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Fields 按字母序返回出错字段
func (f FieldErrors) Fields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Error 实现 error 便于日志输出
func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Fields() {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant 解析表单时间；不带时区的格式按 UTC 处理
func ParseInstant(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDecimal 返回 (值, 是否填写, 是否合法)
func parseDecimal(raw string) (decimal.Decimal, bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, true, false
	}
	return d, true, true
}

var (
	minWholeNumber = decimal.NewFromInt(math.MinInt32)
	maxWholeNumber = decimal.NewFromInt(math.MaxInt32)
)

// parseWholeNumber 数值强制转换后要求为整数，且不超出 int32 列范围
func parseWholeNumber(raw string) (int64, bool, bool) {
	d, present, ok := parseDecimal(raw)
	if !present || !ok {
		return 0, present, false
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, true, false
	}
	if d.LessThan(minWholeNumber) || d.GreaterThan(maxWholeNumber) {
		return 0, true, false
	}
	return d.IntPart(), true, true
}
