package queue

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"github.com/kiruna-explorer/backend/pkg/logger"
)

// MaxRetries is the number of redeliveries before a message goes to the DLQ.
const MaxRetries = 10

const retriesHeader = "x-retries"

func retriesOf(msg amqp091.Delivery) int {
	switch v := msg.Headers[retriesHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// HandleProcessingError routes a failed message to <queue>_retry with an
// incremented retry counter, or to <queue>_dlq once MaxRetries is reached.
// The original delivery is acked after the copy is published and nacked with
// requeue when publishing fails.
func HandleProcessingError(ctx context.Context, ch channelPublisher, msg amqp091.Delivery, queueName string) {
	retries := retriesOf(msg)

	target := queueName + "_retry"
	headers := amqp091.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	if retries >= MaxRetries {
		target = queueName + "_dlq"
		logger.Info("Sending message to DLQ", "dlq", target)
	} else {
		headers[retriesHeader] = int32(retries + 1)
	}

	err := ch.PublishWithContext(ctx, "", target, false, false, amqp091.Publishing{
		ContentType:  msg.ContentType,
		Body:         msg.Body,
		Headers:      headers,
		DeliveryMode: amqp091.Persistent,
	})
	if err != nil {
		logger.Error("Failed to republish message", "queue", target, "err", err)
		if nackErr := msg.Nack(false, true); nackErr != nil {
			logger.Error("Failed to nack message", "err", nackErr)
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		logger.Error("Failed to ack message", "err", err)
	}
}
