package store

import (
	"context"

	"github.com/kiruna-explorer/backend/pkg/common"
)

// DocumentStore persists document records.
//
// CreateDocument assigns the id. UpdateDocument replaces every attribute of
// an existing document (last write wins). DeleteDocument cascades to the
// document's relations and resource rows and returns the blob keys of the
// removed resources so the caller can clean up blob storage.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc common.Document) (int64, error)
	GetDocument(ctx context.Context, id int64) (common.Document, error)
	UpdateDocument(ctx context.Context, doc common.Document) error
	DeleteDocument(ctx context.Context, id int64) ([]string, error)
	ListDocuments(ctx context.Context) ([]common.Document, error)

	// MissingDocuments returns the ids among ids that do not exist.
	MissingDocuments(ctx context.Context, ids ...int64) ([]int64, error)
	// ListAreas returns the named georeferences in use, one per name.
	ListAreas(ctx context.Context) ([]common.Georeference, error)
}

// RelationStore persists typed links between documents. Pairs are unordered
// for lookup and deletion.
type RelationStore interface {
	// Link stores the relation unless the same unordered pair already carries
	// the type, in which case it reports created=false.
	Link(ctx context.Context, id1, id2 int64, t common.RelationType) (created bool, err error)
	Unlink(ctx context.Context, id1, id2 int64, t common.RelationType) error
	ListRelations(ctx context.Context) ([]common.Relation, error)
	ListRelationsByDocument(ctx context.Context, id int64) ([]common.Connection, error)
}

// ResourceStore persists resource metadata. Payloads live in BlobStorage.
type ResourceStore interface {
	// AddResources records a batch atomically and returns the stored rows.
	AddResources(ctx context.Context, resources []common.Resource) ([]common.Resource, error)
	GetResource(ctx context.Context, id int64) (common.Resource, error)
	// ListResources lists the resources of a document, optionally of one kind.
	ListResources(ctx context.Context, documentID int64, kind *common.ResourceKind) ([]common.Resource, error)
}

// CatalogStorage is everything the catalog needs from a storage engine.
type CatalogStorage interface {
	DocumentStore
	RelationStore
	ResourceStore
}

// BlobStorage stores resource payloads by key.
type BlobStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
}
