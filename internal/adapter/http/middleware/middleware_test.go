package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/internal/core/ports/mocks"
	"multiwallet-trader/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func protectedRouter(tokenSvc ports.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/test", JWTAuth(tokenSvc, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"operator": c.GetString(CtxOperator)})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		query    string
		accept   string
		validate string // token expected at Validate; empty means no call
		validErr error
		wantCode int
	}{
		{name: "missing token", wantCode: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantCode: http.StatusUnauthorized},
		{name: "bearer header", header: "Bearer good", validate: "good", wantCode: http.StatusOK},
		{name: "query token on event stream", query: "?access_token=good", accept: "text/event-stream", validate: "good", wantCode: http.StatusOK},
		{name: "query token on plain request", query: "?access_token=good", wantCode: http.StatusUnauthorized},
		{name: "token query name is not accepted", query: "?token=good", accept: "text/event-stream", wantCode: http.StatusUnauthorized},
		{name: "header wins over query", header: "Bearer good", query: "?access_token=other", accept: "text/event-stream", validate: "good", wantCode: http.StatusOK},
		{name: "invalid token", header: "Bearer bad", validate: "bad", validErr: errors.New("expired"), wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tokenSvc := mocks.NewMockTokenService(ctrl)
			if tt.validate != "" {
				if tt.validErr != nil {
					tokenSvc.EXPECT().Validate(tt.validate).Return(nil, tt.validErr)
				} else {
					tokenSvc.EXPECT().Validate(tt.validate).Return(&ports.TokenClaims{Operator: "op"}, nil)
				}
			}

			req := httptest.NewRequest(http.MethodGet, "/test"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			protectedRouter(tokenSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.JSONEq(t, `{"operator":"op"}`, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, response.RequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Body.String())
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

func TestIsStream(t *testing.T) {
	ws := httptest.NewRequest(http.MethodGet, "/ws", nil)
	ws.Header.Set("Upgrade", "WebSocket")
	sse := httptest.NewRequest(http.MethodGet, "/stream", nil)
	sse.Header.Set("Accept", "text/event-stream")

	assert.True(t, isStream(ws))
	assert.True(t, isStream(sse))
	assert.False(t, isStream(httptest.NewRequest(http.MethodGet, "/api/v1/balances", nil)))
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
