package worker

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/qbnguyen/cloudlet-service/infra"
	"github.com/qbnguyen/cloudlet-service/infra/produce"
)

// CleanupConsumer retries object-store deletions the request path gave up
// on. Attempts are capped; after that the job is dropped with a log line,
// since the metadata row is long gone and only the stored bytes leak.
type CleanupConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	maxRetries int
}

func NewCleanupConsumer(channel *amqp.Channel, infra *infra.Infra, maxRetries int) *CleanupConsumer {
	return &CleanupConsumer{
		channel:    channel,
		infra:      infra,
		maxRetries: maxRetries,
	}
}

// Start begins consuming cleanup retry messages.
func (c *CleanupConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.CleanupRetryQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register cleanup consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Started listening for retry jobs on queue: %s", produce.CleanupRetryQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Channel closed")
					return
				}
				c.handleRetry(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *CleanupConsumer) handleRetry(ctx context.Context, msg amqp.Delivery) {
	var job produce.CleanupRetryMessage
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Failed to parse message, dropping")
		_ = msg.Nack(false, false)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Retrying delete of object '%s' (attempt %d)", job.ObjectName, job.Attempt)

	target := job.ObjectName
	matches, err := c.infra.Store.Search(ctx, job.ObjectName, 1)
	if err == nil && len(matches) > 0 {
		target = matches[0].Name
	}

	if err := c.infra.Store.DeleteByName(ctx, target); err != nil {
		if job.Attempt >= c.maxRetries {
			c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Giving up on object '%s' after %d attempts", job.ObjectName, job.Attempt)
			_ = msg.Ack(false)
			return
		}

		job.Attempt++
		if pubErr := c.infra.Produce.CleanupService.PublishCleanupRetry(ctx, job); pubErr != nil {
			c.infra.Logger.ErrorWithContextf(ctx, pubErr, "[Cleanup Consumer] Failed to requeue object '%s'", job.ObjectName)
			_ = msg.Nack(false, true)
			return
		}
		_ = msg.Ack(false)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Deleted object '%s'", target)
	_ = msg.Ack(false)
}
