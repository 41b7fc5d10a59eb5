package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, session, err := issuer.CreateToken(PartnerMedina)
	require.NoError(t, err)
	require.Equal(t, PartnerMedina, session.Partner)

	got, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, PartnerMedina, got.Partner)
	require.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestTokenIssuerRejectsForeignAndExpiredTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, _, err := other.CreateToken(PartnerAyoub)
	require.NoError(t, err)
	_, err = issuer.ValidateToken(token)
	require.ErrorIs(t, err, ErrUnauthorized)

	issued := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }
	token, _, err = issuer.CreateToken(PartnerAyoub)
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = issuer.ValidateToken(token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestParsePartner(t *testing.T) {
	p, err := ParsePartner(" Ayoub ")
	require.NoError(t, err)
	require.Equal(t, PartnerAyoub, p)
	require.Equal(t, "Ayoub", p.DisplayName())

	_, err = ParsePartner("mallory")
	require.ErrorIs(t, err, ErrInvalidInput)
}
