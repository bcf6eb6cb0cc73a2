// Package messagequeue provides a durable-queue abstraction used for the
// notification event fan-out. Publishers and consumers share queue names;
// payloads are opaque bytes (JSON in practice).
package messagequeue

// MessageQueue defines the interface for message queue services.
type MessageQueue interface {
	Publish(queueName string, body []byte) error
	Consume(queueName string, handler func(body []byte)) error
	Close() error
}
