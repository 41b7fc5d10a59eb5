package utils

import (
	"fmt"
	"strings"
	"time"
)

// Partner is one of the two fixed identities allowed to log in.
type Partner string

const (
	PartnerAyoub  Partner = "ayoub"
	PartnerMedina Partner = "medina"
)

// Partners lists every identity in display order.
var Partners = []Partner{PartnerAyoub, PartnerMedina}

func ParsePartner(value string) (Partner, error) {
	switch Partner(strings.ToLower(strings.TrimSpace(value))) {
	case PartnerAyoub:
		return PartnerAyoub, nil
	case PartnerMedina:
		return PartnerMedina, nil
	default:
		return "", fmt.Errorf("%w: unknown user %q", ErrInvalidInput, value)
	}
}

func (p Partner) DisplayName() string {
	switch p {
	case PartnerAyoub:
		return "Ayoub"
	case PartnerMedina:
		return "Medina"
	default:
		return string(p)
	}
}

// Session is the authenticated caller, carried on the request context.
type Session struct {
	Partner   Partner
	IssuedAt  time.Time
	ExpiresAt time.Time
}
