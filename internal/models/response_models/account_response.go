package response_models

import "time"

type LoginResponse struct {
	Token     string    `json:"token"`
	User      string    `json:"user"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionResponse struct {
	User      string    `json:"user"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}
