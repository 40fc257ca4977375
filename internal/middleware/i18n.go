// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/farmfresh/internal/i18n"
)

// I18nMiddleware picks the first Accept-Language entry with a bundled locale,
// else defaultLang when it is bundled, else English.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	fallback := i18n.DefaultLang
	if defaultLang != "" && i18n.IsSupported(defaultLang) {
		fallback = defaultLang
	}
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language"), fallback))
		c.Next()
	}
}

// resolveLanguage handles values like "hi-IN,hi;q=0.9,en;q=0.8".
func resolveLanguage(header, fallback string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag == "" || tag == "*" {
			continue
		}
		subtags := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
		if len(subtags) == 0 {
			continue
		}
		if base := strings.ToLower(subtags[0]); i18n.IsSupported(base) {
			return base
		}
	}
	return fallback
}
