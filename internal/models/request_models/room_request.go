package request_models

type ThresholdsRequest struct {
	MinEach *int `json:"minEach"`
	MinSum  *int `json:"minSum"`
	MaxGap  *int `json:"maxGap"`
}

type CreateRoomRequest struct {
	TopCount   *int               `json:"topCount"`
	Thresholds *ThresholdsRequest `json:"thresholds"`
}

type JoinRoomRequest struct {
	DisplayName string `json:"displayName" binding:"required,max=50"`
}

type LeaveRoomRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

type RateActivityRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
	ActivityID    string `json:"activityId" binding:"required"`
	Value         int    `json:"value" binding:"required,min=1,max=10"`
}

type ChooseActivityRequest struct {
	ActivityID string `json:"activityId" binding:"required"`
}
