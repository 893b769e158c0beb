package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for retry decisions and per-item trade results.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindRateLimited       Kind = "rate_limited"
	KindTransientBackend  Kind = "transient_backend"
	KindBackend           Kind = "backend"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindRejected          Kind = "transaction_rejected"
	KindSubmissionFailed  Kind = "submission_failed"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindAuth              Kind = "auth"
	KindInternal          Kind = "internal"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Kind       Kind   `json:"-"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, kind Kind, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, kind Kind, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001 error for malformed input. Never retried.
func Validation(message string) *AppError {
	return New("VAL_001", KindValidation, message, http.StatusBadRequest)
}

// ---- Backends (RATE, BKD) ----

func RateLimited(err error) *AppError {
	return Wrap("RATE_001", KindRateLimited, "Backend rate limit exceeded", http.StatusTooManyRequests, err)
}

func TransientBackend(err error) *AppError {
	return Wrap("BKD_001", KindTransientBackend, "Backend temporarily unavailable", http.StatusServiceUnavailable, err)
}

// BackendFailure is a backend error that is not known to be temporary.
func BackendFailure(err error) *AppError {
	return Wrap("BKD_002", KindBackend, "Backend request failed", http.StatusBadGateway, err)
}

// ---- Trading (FUND, TX) ----

func InsufficientFunds(message string) *AppError {
	return New("FUND_001", KindInsufficientFunds, message, http.StatusUnprocessableEntity)
}

// TransactionRejected carries the on-chain error payload in its message.
func TransactionRejected(payload string) *AppError {
	return New("TX_001", KindRejected, fmt.Sprintf("Transaction rejected on-chain: %s", payload), http.StatusUnprocessableEntity)
}

func SubmissionFailed(err error) *AppError {
	return Wrap("TX_002", KindSubmissionFailed, "Transaction submission failed", http.StatusBadGateway, err)
}

// ---- Wallets (WAL) ----

func ErrWalletNotFound(identity string) *AppError {
	return New("WAL_001", KindNotFound, fmt.Sprintf("wallet %s not found", identity), http.StatusNotFound)
}

func ErrDuplicateWallet(identity string) *AppError {
	return New("WAL_002", KindConflict, fmt.Sprintf("wallet %s already exists", identity), http.StatusConflict)
}

func ErrNoDevWallet() *AppError {
	return New("WAL_003", KindConflict, "Dev wallet not found, initialize or promote one first", http.StatusConflict)
}

// ---- Tokens (TOK) ----

func ErrTokenNotFound(mint string) *AppError {
	return New("TOK_001", KindNotFound, fmt.Sprintf("metadata for %s not found", mint), http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", KindAuth, "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", KindAuth, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting of the control API (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_002", KindRateLimited, "API rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", KindInternal, "Internal server error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", KindInternal, "Encryption service failure", http.StatusInternalServerError, err)
}

// KindOf reports the Kind of err, or KindInternal for errors that are not AppErrors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetryable reports whether another attempt could succeed for err. An on-chain
// rejection is final: the transaction landed and failed, so resubmitting
// would trade again.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindValidation, KindInsufficientFunds, KindRejected, KindNotFound, KindConflict, KindAuth:
		return false
	default:
		return true
	}
}
