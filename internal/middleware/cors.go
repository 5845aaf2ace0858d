package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsHeaders = "Content-Type, Authorization"
	corsMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsMaxAge  = "600"
)

// CORSMiddleware libera as origens listadas; lista vazia libera qualquer origem
// (ambiente de desenvolvimento).
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()

		if origin != "" && (len(allowed) == 0 || slices.Contains(allowed, strings.TrimSuffix(origin, "/"))) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Max-Age", corsMaxAge)
		}
		h.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
