package fiber

import "time"

type IngestResponse struct {
	Channel    string `json:"channel" example:"binu"`
	Created    int    `json:"created"`
	Duplicates int    `json:"duplicates"`
	Rejected   int    `json:"rejected"`
	Failed     int    `json:"failed"`
}

// IngestFromSourceRequest points at a CSV export stored in the bucket.
// @Description Stored export ingestion DTO
type IngestFromSourceRequest struct {
	Key         string `json:"key" validate:"required" example:"binu/2014-06-01.csv"`
	CountryCode string `json:"country_code" validate:"omitempty,alpha,max=8" example:"za"`
	Async       bool   `json:"async"`
}

type TaskAcceptedResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status" example:"pending"`
}

type RecordResponse struct {
	ID              int64     `json:"id"`
	SourceTimestamp time.Time `json:"source_timestamp"`
	ChannelUID      string    `json:"channel_uid"`
	Email           string    `json:"email,omitempty"`
	Name            string    `json:"name,omitempty"`
	MSISDN          string    `json:"msisdn,omitempty"`
	CountryCode     string    `json:"country_code"`
	Age             *int      `json:"age,omitempty"`
	Location        string    `json:"location,omitempty"`
	Gender          string    `json:"gender,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListRecordsResponse struct {
	Channel string           `json:"channel"`
	Records []RecordResponse `json:"records"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message" example:"channel name is required"`
}
