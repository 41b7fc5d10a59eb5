package response_models

type Coordinates struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName,omitempty"`
}

type ActivityLocation struct {
	Activity    ActivityResponse `json:"activity"`
	Coordinates Coordinates      `json:"coordinates"`
}
