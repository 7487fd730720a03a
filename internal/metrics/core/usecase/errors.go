package usecase

import "errors"

var (
	ErrInvalidChannelName = errors.New("channel name is required")
	ErrInvalidBuckets     = errors.New("invalid metric buckets")
)
