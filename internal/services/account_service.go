package services

import (
	"context"
	"fmt"
	"time"

	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/pkg/logger"
	"moments/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	Describe(session utils.Session) response_models.SessionResponse
}

type AccountService struct {
	// partner -> bcrypt hash; partners without a configured password cannot log in
	hashes map[utils.Partner]string
	issuer *utils.TokenIssuer
	log    *logger.Logger
}

// NewAccountService hashes the configured plaintext passwords once at startup.
func NewAccountService(passwords map[utils.Partner]string, issuer *utils.TokenIssuer, log *logger.Logger) (AccountServiceInterface, error) {
	hashes := make(map[utils.Partner]string, len(passwords))
	for partner, password := range passwords {
		if password == "" {
			continue
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", partner, err)
		}
		hashes[partner] = hash
	}

	return &AccountService{
		hashes: hashes,
		issuer: issuer,
		log:    log.With("service", "AccountService"),
	}, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	startTime := time.Now()

	partner, err := utils.ParsePartner(request.User)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	hash, ok := a.hashes[partner]
	if !ok {
		a.log.Warn("login attempted for partner without password", "user", partner)
		return nil, utils.ErrInvalidCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(hash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, session, err := a.issuer.CreateToken(partner)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	a.log.Info("login succeeded", "user", partner, "took", time.Since(startTime))

	return &response_models.LoginResponse{
		Token:     token,
		User:      string(partner),
		Name:      partner.DisplayName(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (a *AccountService) Describe(session utils.Session) response_models.SessionResponse {
	return response_models.SessionResponse{
		User:      string(session.Partner),
		Name:      session.Partner.DisplayName(),
		ExpiresAt: session.ExpiresAt,
	}
}
