package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kiruna-explorer/backend/internal/util"
	"github.com/kiruna-explorer/backend/pkg/logger"
	"github.com/kiruna-explorer/backend/pkg/store"
)

// CleanupMessage lists the blobs of a deleted document.
type CleanupMessage struct {
	DocumentID int64    `json:"documentId"`
	Keys       []string `json:"keys"`
}

// DocumentPrefix is the blob key prefix of every resource of a document.
func DocumentPrefix(documentID int64) string {
	return fmt.Sprintf("documents/%d/", documentID)
}

// CleanupPublisher hands blob cleanup to the worker through CleanupQueue.
type CleanupPublisher struct {
	ch channelPublisher
}

func NewCleanupPublisher(ch channelPublisher) *CleanupPublisher {
	return &CleanupPublisher{ch: ch}
}

// DocumentDeleted enqueues the blob keys of a deleted document.
func (p *CleanupPublisher) DocumentDeleted(ctx context.Context, documentID int64, keys []string) error {
	body, err := json.Marshal(CleanupMessage{DocumentID: documentID, Keys: keys})
	if err != nil {
		return err
	}
	return PublishFIFO(ctx, p.ch, CleanupQueue, body)
}

type folderDeleter interface {
	DeleteFolder(ctx context.Context, prefix string) error
}

// ProcessCleanupMessage deletes the listed blobs. When the blob storage can
// delete by prefix, the document's folder is swept too so blobs from uploads
// that failed half way are removed as well.
func ProcessCleanupMessage(ctx context.Context, blobs store.BlobStorage, body []byte) error {
	var msg CleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("invalid cleanup message: %w", err)
	}
	if msg.DocumentID <= 0 {
		return fmt.Errorf("invalid cleanup message: missing document id")
	}

	err := util.RetryErrWithContext(ctx, 3, 500*time.Millisecond, func(ctx context.Context) error {
		return blobs.Delete(ctx, msg.Keys...)
	})
	if err != nil {
		return fmt.Errorf("delete blobs of document %d: %w", msg.DocumentID, err)
	}

	if fd, ok := blobs.(folderDeleter); ok {
		if err := fd.DeleteFolder(ctx, DocumentPrefix(msg.DocumentID)); err != nil {
			return fmt.Errorf("sweep blobs of document %d: %w", msg.DocumentID, err)
		}
	}

	logger.Info("[Queue] Removed blobs of deleted document", "document_id", msg.DocumentID, "blobs", len(msg.Keys))
	return nil
}
