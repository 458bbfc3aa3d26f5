package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/kiruna-explorer/backend/internal/util"
	"github.com/kiruna-explorer/backend/pkg/logger"
)

// CleanupQueue carries blob keys left behind by deleted documents.
const CleanupQueue = "cleanup_queue"

// retryDelay is how long a failed message waits in the retry queue.
const retryDelay = 10 * time.Second

// URLFromEnv builds the broker URL from the RABBITMQ_* variables.
func URLFromEnv() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		util.GetEnv("RABBITMQ_USER"),
		util.GetEnv("RABBITMQ_PASSWORD"),
		util.GetEnvString("RABBITMQ_HOST", "localhost"),
		util.GetEnvString("RABBITMQ_PORT", "5672"),
	)
}

// Init connects to the broker, retrying while it starts up.
func Init(ctx context.Context) (*amqp091.Connection, error) {
	url := URLFromEnv()
	var conn *amqp091.Connection
	err := util.RetryErrWithContext(ctx, 5, time.Second, func(context.Context) error {
		c, err := amqp091.Dial(url)
		if err != nil {
			logger.Warn("RabbitMQ not reachable yet", "err", err)
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

type queueDeclarer interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
}

// SetupQueues declares every queue with its dead letter queue (<name>_dlq) and
// its retry queue (<name>_retry), which routes messages back after retryDelay.
func SetupQueues(ch queueDeclarer, queueNames []string) error {
	for _, name := range queueNames {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare %s: %w", name, err)
		}

		dlqName := name + "_dlq"
		if _, err := ch.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare %s: %w", dlqName, err)
		}

		retryName := name + "_retry"
		_, err := ch.QueueDeclare(
			retryName,
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             int32(retryDelay / time.Millisecond),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": name,
			},
		)
		if err != nil {
			return fmt.Errorf("declare %s: %w", retryName, err)
		}
	}

	return nil
}

type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// PublishFIFO publishes a persistent JSON message on the default exchange.
func PublishFIFO(ctx context.Context, ch channelPublisher, queueName string, data []byte) error {
	return ch.PublishWithContext(ctx, "", queueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	})
}
