package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kiruna-explorer/backend/internal/queue"
	"github.com/kiruna-explorer/backend/internal/storage"
	"github.com/kiruna-explorer/backend/internal/util"
	"github.com/kiruna-explorer/backend/pkg/logger"
	"github.com/kiruna-explorer/backend/pkg/logger/console"
)

// The worker removes the blobs of deleted documents. Failed messages go to
// the retry queue and, after queue.MaxRetries attempts, to the DLQ.
func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  util.GetEnvBool("DEBUG", false),
		Format: util.GetEnv("LOG_FORMAT"),
		Prefix: "worker",
	})
	logger.Init(consoleLogger)

	s3cfg := storage.S3ConfigFromEnv()
	client, err := storage.NewS3Client(ctx, s3cfg)
	if err != nil {
		logger.Fatal("Failed to create S3 client", "err", err)
	}
	blobs := storage.NewS3Storage(client, s3cfg.Bucket)

	conn, err := queue.Init(ctx)
	if err != nil {
		logger.Fatal("Failed to connect to queue", "err", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.CleanupQueue}); err != nil {
		logger.Fatal("Failed to declare queues", "err", err)
	}

	// One message at a time.
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := ch.Consume(queue.CleanupQueue, "cleanup_queue_consumer", false, false, false, false, nil)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.CleanupQueue, "err", err)
	}
	logger.Info("Listening for messages", "queue", queue.CleanupQueue)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received, exiting...")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Info("Message channel closed", "queue", queue.CleanupQueue)
				return
			}
			handle(ctx, ch, blobs, msg)
		}
	}
}

func handle(ctx context.Context, ch *amqp.Channel, blobs *storage.S3Storage, msg amqp.Delivery) {
	start := time.Now()
	if err := queue.ProcessCleanupMessage(ctx, blobs, msg.Body); err != nil {
		logger.Error("Error processing message", "queue", queue.CleanupQueue, "err", err)
		queue.HandleProcessingError(ctx, ch, msg, queue.CleanupQueue)
		return
	}
	if err := msg.Ack(false); err != nil {
		logger.Error("Failed to ack message", "err", err)
		return
	}
	logger.Info("Message processed successfully", "queue", queue.CleanupQueue, "duration", time.Since(start))
}
