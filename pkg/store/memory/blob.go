package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/store"
)

var _ store.BlobStorage = (*BlobStore)(nil)

type blob struct {
	contentType string
	data        []byte
}

// BlobStore keeps payloads in a map.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string]blob)}
}

func (b *BlobStore) Put(_ context.Context, key, contentType string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[key] = blob{contentType: contentType, data: slices.Clone(data)}
	return nil
}

func (b *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.blobs[key]
	if !ok {
		return nil, common.NotFoundError{Resource: "blob " + key}
	}
	return slices.Clone(v.data), nil
}

// Delete removes the keys. Unknown keys are ignored.
func (b *BlobStore) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.blobs, k)
	}
	return nil
}

// Keys lists the stored keys in sorted order.
func (b *BlobStore) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.blobs))
	for k := range b.blobs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
