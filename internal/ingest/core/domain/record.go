package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Field limits of the stored record, counted in characters.
const (
	MaxUIDLength    = 254
	MaxEmailLength  = 254
	MaxNameLength   = 254
	MaxMSISDNLength = 99
)

// Record is one normalized row. Empty strings stand for absent values.
type Record struct {
	ID              int64
	SourceTimestamp time.Time
	ChannelID       int64
	ChannelUID      string
	Email           string
	Name            string
	MSISDN          string
	CountryCode     string
	Age             *int
	Location        string
	Gender          Gender
	CreatedAt       time.Time
}
