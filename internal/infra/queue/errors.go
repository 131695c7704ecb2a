package queue

import "errors"

var (
	ErrConnect = errors.New("failed to connect to broker")
	ErrPublish = errors.New("failed to publish event")
)
