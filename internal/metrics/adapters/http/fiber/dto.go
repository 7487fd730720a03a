package fiber

type DeliveryResponse struct {
	Value      *int64 `json:"value"`
	Hint       string `json:"hint" example:"LAST"`
	Delivered  bool   `json:"delivered"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

type EmissionResponse struct {
	Channel string                      `json:"channel,omitempty"`
	Metrics map[string]DeliveryResponse `json:"metrics"`
}

type DispatchedResponse struct {
	Tasks map[string]string `json:"tasks"` // channel -> task id
}

type ErrorResponse struct {
	Error   string `json:"error" example:"channel_not_found"`
	Message string `json:"message" example:"channel not found: sms"`
}
