package domain

import (
	"fmt"
	"strconv"
)

// AggregationHint tells the collector how to merge a point with earlier ones.
type AggregationHint string

// HintLast replaces the previous value of the metric.
const HintLast AggregationHint = "LAST"

// Value is an integer metric value that may be null. A null value is sent
// as JSON null and signals "no data" to the collector.
type Value struct {
	Int64 int64
	Valid bool
}

func IntValue(v int64) Value { return Value{Int64: v, Valid: true} }

var NullValue = Value{}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, v.Int64, 10), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = NullValue
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("metric value: %w", err)
	}
	*v = IntValue(n)
	return nil
}

func (v Value) String() string {
	if !v.Valid {
		return "null"
	}
	return strconv.FormatInt(v.Int64, 10)
}

// MetricSummary is the cached total for one (channel, country, metric).
type MetricSummary struct {
	ID          int64
	ChannelID   int64
	ChannelName string
	CountryCode string
	Metric      string
	Total       int64
}

// Name is the dotted metric name, e.g. "za.binu.supporter".
func (m MetricSummary) Name() string {
	return fmt.Sprintf("%s.%s.%s", m.CountryCode, m.ChannelName, m.Metric)
}

// Delivery is the outcome of one emission.
type Delivery struct {
	Name       string          `json:"name"`
	Value      Value           `json:"value"`
	Hint       AggregationHint `json:"hint"`
	Delivered  bool            `json:"delivered"`
	StatusCode int             `json:"status_code,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Bucket is one tracked cross-channel total. An empty CountryCode sums
// every summary regardless of country.
type Bucket struct {
	Key         string
	CountryCode string
	Metric      string
}

func (b Bucket) Name() string {
	if b.CountryCode == "" {
		return b.Metric
	}
	return b.CountryCode + "." + b.Metric
}

func DefaultBuckets() []Bucket {
	return []Bucket{
		{Key: "za", CountryCode: "za", Metric: "supporter"},
		{Key: "ng", CountryCode: "ng", Metric: "supporter"},
		{Key: "tz", CountryCode: "tz", Metric: "supporter"},
		{Key: "supporter", Metric: "supporter"},
	}
}
