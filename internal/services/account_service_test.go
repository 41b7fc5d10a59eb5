package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moments/internal/models/request_models"
	"moments/pkg/logger"
	"moments/pkg/utils"
)

func newAccountService(t *testing.T) (AccountServiceInterface, *utils.TokenIssuer) {
	t.Helper()
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	svc, err := NewAccountService(map[utils.Partner]string{
		utils.PartnerAyoub:  "sunrise",
		utils.PartnerMedina: "",
	}, issuer, logger.NewNop())
	require.NoError(t, err)
	return svc, issuer
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, issuer := newAccountService(t)

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{User: "Ayoub", Password: "sunrise"})
	require.NoError(t, err)
	assert.Equal(t, "ayoub", resp.User)
	assert.Equal(t, "Ayoub", resp.Name)

	session, err := issuer.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.PartnerAyoub, session.Partner)

	me := svc.Describe(*session)
	assert.Equal(t, "ayoub", me.User)
}

func TestLoginRejections(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	cases := map[string]request_models.LoginRequest{
		"wrong password":        {User: "ayoub", Password: "sunset"},
		"unknown user":          {User: "bob", Password: "sunrise"},
		"partner with no login": {User: "medina", Password: ""},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, req)
			require.ErrorIs(t, err, utils.ErrInvalidCredentials)
		})
	}
}
