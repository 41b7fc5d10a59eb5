package utils

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrDatabaseError       = errors.New("database error")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrRoomClosed          = errors.New("room does not accept this action in its current status")
	ErrChannelDisabled     = errors.New("notification channel disabled")
	ErrAddressNotFound     = errors.New("address not found")
	ErrFeatureDisabled     = errors.New("feature disabled")
)
