package response

import (
	"context"
	"errors"
	"net/http"
	"time"

	"multiwallet-trader/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	success(c, http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	success(c, http.StatusCreated, data)
}

// StatusClientClosed is recorded when the client went away before the answer.
const StatusClientClosed = 499

// Error sends an error envelope and records err on the gin context for the access log.
// *apperror.AppError values keep their status and code. A deadline that expired while
// waiting on a backend is reported as transient; anything else becomes a 500.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("unspecified error")
	}
	_ = c.Error(err)

	if errors.Is(err, context.Canceled) && c.Request != nil && c.Request.Context().Err() != nil {
		c.AbortWithStatus(StatusClientClosed)
		return
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			appErr = apperror.TransientBackend(err)
		} else {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				ErrorCode: "SYS_000",
				ErrorKind: string(apperror.KindInternal),
				Message:   "Internal server error",
				RequestID: RequestID(c),
				Timestamp: now(),
			})
			return
		}
	}

	if appErr.HTTPStatus == http.StatusTooManyRequests && c.Writer.Header().Get("Retry-After") == "" {
		c.Header("Retry-After", "1")
	}
	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		ErrorKind: string(appErr.Kind),
		Message:   appErr.Message,
		RequestID: RequestID(c),
		Timestamp: now(),
	})
}

// RequestID retrieves the request id from context, or generates one.
func RequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: RequestID(c),
		Timestamp: now(),
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
