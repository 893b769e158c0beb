package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func auditRouter(events *mocks.MockEventStream, status int) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(CtxOperator, "op"); c.Next() })
	r.Use(AuditTrail(events))
	handler := func(c *gin.Context) { c.Status(status) }
	r.POST("/api/v1/trades/buy", handler)
	r.DELETE("/api/v1/wallets/:identity", handler)
	r.POST("/api/v1/logs", handler)
	r.GET("/api/v1/balances", handler)
	return r
}

func TestAuditTrail_PublishesMutations(t *testing.T) {
	tests := []struct {
		method, path, action string
	}{
		{http.MethodPost, "/api/v1/trades/buy", "trades buy"},
		{http.MethodDelete, "/api/v1/wallets/W1", "wallet removed"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			events := mocks.NewMockEventStream(ctrl)
			events.EXPECT().Publish(domain.CategoryAPI, tt.action, gomock.Any()).
				DoAndReturn(func(_, _ string, data interface{}) domain.LogEntry {
					m := data.(map[string]interface{})
					assert.Equal(t, "op", m["operator"])
					assert.Equal(t, tt.path, m["path"])
					return domain.LogEntry{}
				})

			w := httptest.NewRecorder()
			auditRouter(events, http.StatusOK).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestAuditTrail_Skips(t *testing.T) {
	tests := []struct {
		name, method, path string
		status             int
	}{
		{"reads", http.MethodGet, "/api/v1/balances", http.StatusOK},
		{"failures", http.MethodPost, "/api/v1/trades/buy", http.StatusBadRequest},
		{"log emission", http.MethodPost, "/api/v1/logs", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			events := mocks.NewMockEventStream(ctrl) // no Publish expected

			w := httptest.NewRecorder()
			auditRouter(events, tt.status).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, "sweeps native", actionFor(http.MethodPost, "/api/v1/sweeps/native"))
	assert.Equal(t, "secret exported", actionFor(http.MethodPost, "/api/v1/wallets/:identity/export"))
	assert.Equal(t, "wallets dev promote", actionFor(http.MethodPost, "/api/v1/wallets/dev/promote"))
	assert.Empty(t, actionFor(http.MethodPost, "/health"))
	assert.Empty(t, actionFor(http.MethodPost, ""))
}
