package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleZH = "zh-CN"
	LocaleEN = "en-US"
)

const localeHeader = "X-Locale"

// DefaultLocale 默认语言
var DefaultLocale = LocaleZH

// ResolveLocale 依次读取 X-Locale、lang 查询参数与 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	for _, raw := range []string{
		c.GetHeader(localeHeader),
		c.Query("lang"),
		c.GetHeader("Accept-Language"),
	} {
		if locale, ok := matchLocale(raw); ok {
			return locale
		}
	}
	return DefaultLocale
}

func matchLocale(raw string) (string, bool) {
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		switch {
		case tag == "":
			continue
		case strings.HasPrefix(tag, "zh"):
			return LocaleZH, true
		case strings.HasPrefix(tag, "en"):
			return LocaleEN, true
		}
	}
	return "", false
}

// T 按语言取消息，缺失时回退默认语言，再缺失返回 key
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 取消息后格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
