package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   InsufficientFunds("balance below fee buffer"),
			expected: "[FUND_001] balance below fee buffer",
		},
		{
			name:     "with wrapped error",
			appErr:   TransientBackend(fmt.Errorf("connection refused")),
			expected: "[BKD_001] Backend temporarily unavailable: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := SubmissionFailed(inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, Validation("x").Unwrap())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		kind       Kind
		httpStatus int
	}{
		{"Validation", Validation("bad"), "VAL_001", KindValidation, http.StatusBadRequest},
		{"RateLimited", RateLimited(nil), "RATE_001", KindRateLimited, http.StatusTooManyRequests},
		{"TransientBackend", TransientBackend(nil), "BKD_001", KindTransientBackend, http.StatusServiceUnavailable},
		{"InsufficientFunds", InsufficientFunds("x"), "FUND_001", KindInsufficientFunds, http.StatusUnprocessableEntity},
		{"TransactionRejected", TransactionRejected(`{"InstructionError":[0,"Custom"]}`), "TX_001", KindRejected, http.StatusUnprocessableEntity},
		{"SubmissionFailed", SubmissionFailed(nil), "TX_002", KindSubmissionFailed, http.StatusBadGateway},
		{"WalletNotFound", ErrWalletNotFound("abc"), "WAL_001", KindNotFound, http.StatusNotFound},
		{"DuplicateWallet", ErrDuplicateWallet("abc"), "WAL_002", KindConflict, http.StatusConflict},
		{"NoDevWallet", ErrNoDevWallet(), "WAL_003", KindConflict, http.StatusConflict},
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", KindAuth, http.StatusUnauthorized},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", KindAuth, http.StatusUnauthorized},
		{"RateLimitExceeded", ErrRateLimitExceeded(), "RATE_002", KindRateLimited, http.StatusTooManyRequests},
		{"Internal", InternalError(errors.New("boom")), "SYS_001", KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestTransactionRejected_CarriesPayload(t *testing.T) {
	err := TransactionRejected(`{"InstructionError":[2,{"Custom":6003}]}`)
	assert.Contains(t, err.Message, "Custom")
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("item 3: %w", InsufficientFunds("no SOL"))

	assert.Equal(t, KindInsufficientFunds, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation is terminal", Validation("bad mint"), false},
		{"insufficient funds is terminal", InsufficientFunds("empty"), false},
		{"not found is terminal", ErrWalletNotFound("x"), false},
		{"rate limited retries", RateLimited(nil), true},
		{"transient retries", TransientBackend(nil), true},
		{"on-chain rejection is terminal", TransactionRejected("slippage"), false},
		{"submission failure retries", SubmissionFailed(nil), true},
		{"unknown errors retry", errors.New("eof"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
