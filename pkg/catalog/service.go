// Package catalog implements the document catalogue on top of the stores:
// input validation, relation and upload orchestration, search and the diagram.
package catalog

import (
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/layout"
	"github.com/kiruna-explorer/backend/pkg/store"
)

var tracer = otel.Tracer("catalog")

// CleanupNotifier receives the blob keys of deleted documents so they can be
// removed out of band.
type CleanupNotifier interface {
	DocumentDeleted(ctx context.Context, documentID int64, keys []string) error
}

type Options struct {
	// Layout configures the diagram axis. Zero value means layout.DefaultParams.
	Layout layout.Params
	// UploadParallelism bounds concurrent blob writes per upload. Defaults to 4.
	UploadParallelism int
	// Cleanup, when set, takes over blob removal after a document is deleted.
	// Without it blobs are deleted synchronously.
	Cleanup CleanupNotifier
	// NewKey returns the unique part of a blob key. Defaults to a nanoid.
	NewKey func() (string, error)
}

type Service struct {
	store store.CatalogStorage
	blobs store.BlobStorage
	opts  Options
}

func NewService(storage store.CatalogStorage, blobs store.BlobStorage, opts Options) *Service {
	if opts.Layout == (layout.Params{}) {
		opts.Layout = layout.DefaultParams()
	}
	if opts.UploadParallelism <= 0 {
		opts.UploadParallelism = 4
	}
	if opts.NewKey == nil {
		opts.NewKey = func() (string, error) { return gonanoid.New() }
	}
	return &Service{store: storage, blobs: blobs, opts: opts}
}

// fail records err on the span unless it is caused by the caller's input.
func fail(span trace.Span, err error) error {
	if err != nil && !common.IsDomainError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// ensureDocuments returns ErrInvalidReference when any id is unknown.
func (s *Service) ensureDocuments(ctx context.Context, ids ...int64) error {
	missing, err := s.store.MissingDocuments(ctx, ids...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return common.ErrInvalidReference
	}
	return nil
}
