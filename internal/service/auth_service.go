package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService for the single configured operator.
type AuthServiceImpl struct {
	operator     string
	passwordHash string
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	log          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl. passwordHash must be an Argon2id PHC string.
func NewAuthService(
	operator string,
	passwordHash string,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) (*AuthServiceImpl, error) {
	if operator == "" {
		return nil, fmt.Errorf("operator name is required")
	}
	if err := CheckArgon2Hash(passwordHash); err != nil {
		return nil, fmt.Errorf("operator password hash: %w", err)
	}
	return &AuthServiceImpl{
		operator:     operator,
		passwordHash: passwordHash,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		log:          log,
	}, nil
}

// Login checks the operator credentials and issues a JWT.
func (s *AuthServiceImpl) Login(_ context.Context, operator, password string) (string, time.Time, error) {
	// Verify the password even for an unknown operator to keep timing uniform.
	match, err := s.hashSvc.Verify(password, s.passwordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if subtle.ConstantTimeCompare([]byte(operator), []byte(s.operator)) != 1 || !match {
		s.log.Warn().Str("operator", operator).Msg("login rejected")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(s.operator)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Str("operator", operator).Msg("operator logged in")
	return token, expiresAt, nil
}
