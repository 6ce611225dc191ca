package events

import "errors"

var (
	// ErrPublish возвращается, когда сообщение не удалось записать в Kafka
	ErrPublish = errors.New("events: failed to publish message")

	// ErrPublisherClosed возвращается при публикации после Close
	ErrPublisherClosed = errors.New("events: publisher is closed")
)
