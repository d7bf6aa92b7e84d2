package i18n

import (
	"fmt"
	"strings"

	"github.com/gamevault-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// ResolveLocale 解析请求语言（query 优先于 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEn
	}
	if q := strings.TrimSpace(c.Query("locale")); q != "" {
		if normalized, ok := matchLocale(q); ok {
			return normalized
		}
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if normalized, ok := matchLocale(tag); ok {
			return normalized
		}
	}
	return constants.LocaleEn
}

// T 按语言取文案，缺失时回退英文，再回退 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[constants.LocaleEn][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数的文案格式化
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func matchLocale(tag string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(tag))
	for _, supported := range constants.SupportedLocales {
		if lowered == supported || strings.HasPrefix(lowered, supported+"-") {
			return supported, true
		}
	}
	return "", false
}
