package middleware

import (
	"net/http"
	"strings"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// AuditTrail publishes every successful state-changing API call to the event log.
func AuditTrail(events ports.EventStream) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action := actionFor(c.Request.Method, c.FullPath())
		if action == "" {
			return
		}

		data := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"client_ip": c.ClientIP(),
		}
		if op := c.GetString(CtxOperator); op != "" {
			data["operator"] = op
		}
		events.Publish(domain.CategoryAPI, action, data)
	}
}

// actionFor names the audited action of a route; log emission and login are not audited.
func actionFor(method, route string) string {
	const prefix = "/api/v1/"
	if !strings.HasPrefix(route, prefix) {
		return ""
	}
	switch route = strings.TrimPrefix(route, prefix); route {
	case "logs", "auth/login":
		return ""
	case "wallets/:identity":
		if method == http.MethodDelete {
			return "wallet removed"
		}
	case "wallets/:identity/name":
		return "wallet renamed"
	case "wallets/:identity/export":
		return "secret exported"
	case "wallets/overrides":
		return "overrides updated"
	case "state":
		return "state patched"
	}
	return strings.ReplaceAll(route, "/", " ")
}
