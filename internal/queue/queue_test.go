package queue

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiruna-explorer/backend/pkg/store/memory"
)

type published struct {
	key string
	msg amqp091.Publishing
}

type fakeChannel struct {
	published []published
	declared  map[string]amqp091.Table
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, published{key: key, msg: msg})
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, args amqp091.Table) (amqp091.Queue, error) {
	if f.declared == nil {
		f.declared = map[string]amqp091.Table{}
	}
	f.declared[name] = args
	return amqp091.Queue{Name: name}, nil
}

type fakeAck struct {
	acked, nacked, requeued bool
}

func (a *fakeAck) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}
func (a *fakeAck) Reject(uint64, bool) error { return nil }

func TestSetupQueues(t *testing.T) {
	ch := &fakeChannel{}
	require.NoError(t, SetupQueues(ch, []string{CleanupQueue}))

	assert.Contains(t, ch.declared, "cleanup_queue")
	assert.Contains(t, ch.declared, "cleanup_queue_dlq")
	retry := ch.declared["cleanup_queue_retry"]
	require.NotNil(t, retry)
	assert.Equal(t, "cleanup_queue", retry["x-dead-letter-routing-key"])
	assert.Equal(t, int32(10000), retry["x-message-ttl"])
}

func TestHandleProcessingError_Retry(t *testing.T) {
	ch := &fakeChannel{}
	ack := &fakeAck{}
	msg := amqp091.Delivery{Acknowledger: ack, Body: []byte("{}"), Headers: amqp091.Table{"x-retries": int32(2)}}

	HandleProcessingError(context.Background(), ch, msg, CleanupQueue)

	require.Len(t, ch.published, 1)
	assert.Equal(t, "cleanup_queue_retry", ch.published[0].key)
	assert.Equal(t, int32(3), ch.published[0].msg.Headers["x-retries"])
	assert.Equal(t, int32(2), msg.Headers["x-retries"], "original headers must not change")
	assert.True(t, ack.acked)
}

func TestHandleProcessingError_DeadLetter(t *testing.T) {
	ch := &fakeChannel{}
	ack := &fakeAck{}
	msg := amqp091.Delivery{Acknowledger: ack, Headers: amqp091.Table{"x-retries": int32(MaxRetries)}}

	HandleProcessingError(context.Background(), ch, msg, CleanupQueue)

	require.Len(t, ch.published, 1)
	assert.Equal(t, "cleanup_queue_dlq", ch.published[0].key)
	assert.True(t, ack.acked)
}

func TestHandleProcessingError_PublishFailureRequeues(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	ack := &fakeAck{}

	HandleProcessingError(context.Background(), ch, amqp091.Delivery{Acknowledger: ack}, CleanupQueue)

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestCleanupPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p := NewCleanupPublisher(ch)

	require.NoError(t, p.DocumentDeleted(context.Background(), 7, []string{"documents/7/original/a.pdf"}))
	require.Len(t, ch.published, 1)
	assert.Equal(t, CleanupQueue, ch.published[0].key)
	assert.Equal(t, amqp091.Persistent, ch.published[0].msg.DeliveryMode)

	var msg CleanupMessage
	require.NoError(t, json.Unmarshal(ch.published[0].msg.Body, &msg))
	assert.Equal(t, CleanupMessage{DocumentID: 7, Keys: []string{"documents/7/original/a.pdf"}}, msg)
}

type sweepingBlobs struct {
	*memory.BlobStore
	swept []string
}

func (s *sweepingBlobs) DeleteFolder(ctx context.Context, prefix string) error {
	s.swept = append(s.swept, prefix)
	var keys []string
	for _, k := range s.Keys() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return s.Delete(ctx, keys...)
}

func TestProcessCleanupMessage(t *testing.T) {
	ctx := context.Background()
	blobs := &sweepingBlobs{BlobStore: memory.NewBlobStore()}
	require.NoError(t, blobs.Put(ctx, "documents/7/original/a.pdf", "application/pdf", []byte("a")))
	require.NoError(t, blobs.Put(ctx, "documents/7/attachment/orphan.png", "image/png", []byte("b")))
	require.NoError(t, blobs.Put(ctx, "documents/70/original/keep.pdf", "application/pdf", []byte("c")))

	body, _ := json.Marshal(CleanupMessage{DocumentID: 7, Keys: []string{"documents/7/original/a.pdf"}})
	require.NoError(t, ProcessCleanupMessage(ctx, blobs, body))

	assert.Equal(t, []string{"documents/7/"}, blobs.swept)
	assert.Equal(t, []string{"documents/70/original/keep.pdf"}, blobs.Keys())
}

func TestProcessCleanupMessage_Invalid(t *testing.T) {
	blobs := memory.NewBlobStore()
	assert.Error(t, ProcessCleanupMessage(context.Background(), blobs, []byte("not json")))
	assert.Error(t, ProcessCleanupMessage(context.Background(), blobs, []byte(`{"keys":["x"]}`)))
}
