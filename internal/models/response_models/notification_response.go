package response_models

type EmailNotificationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type SMSNotificationResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	MessageIDs []string `json:"messageIds,omitempty"`
}
