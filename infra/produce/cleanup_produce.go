package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	CleanupExchange   = "media.cleanup.exchange"
	CleanupRetryQueue = "media.cleanup.retry"
	CleanupRoutingKey = "media.cleanup.retry"
)

// CleanupRetryMessage asks the consumer to retry deleting an object the
// request-path cleanup could not remove from the store. Metadata deletion has
// already happened by the time this is published.
type CleanupRetryMessage struct {
	FileID     string `json:"file_id"`
	OwnerID    string `json:"owner_id"`
	ObjectName string `json:"object_name"`
	Attempt    int    `json:"attempt"`
	Timestamp  int64  `json:"timestamp"`
}

// CleanupProduceService publishes cleanup retry jobs.
type CleanupProduceService struct {
	channel *amqp.Channel
}

func InitCleanupProduceService(channel *amqp.Channel) *CleanupProduceService {
	service := &CleanupProduceService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		CleanupExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Cleanup exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		CleanupRetryQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Cleanup retry queue: " + err.Error())
	}

	err = channel.QueueBind(
		CleanupRetryQueue,
		CleanupRoutingKey,
		CleanupExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Cleanup retry queue: " + err.Error())
	}

	return service
}

func (s *CleanupProduceService) PublishCleanupRetry(ctx context.Context, msg CleanupRetryMessage) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(ctx,
		CleanupExchange,
		CleanupRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
