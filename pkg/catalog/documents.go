package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/filter"
	"github.com/kiruna-explorer/backend/pkg/logger"
)

// CreateDocument validates the input and stores a new document.
func (s *Service) CreateDocument(ctx context.Context, in DocumentInput) (common.Document, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.CreateDocument")
	defer span.End()

	doc, err := in.document()
	if err != nil {
		return common.Document{}, err
	}

	id, err := s.store.CreateDocument(ctx, doc)
	if err != nil {
		return common.Document{}, fail(span, err)
	}
	doc.ID = id
	span.SetAttributes(attribute.Int64("document_id", id))
	logger.Info("Document created", "document_id", id, "title", doc.Title)
	return doc, nil
}

func (s *Service) GetDocument(ctx context.Context, id int64) (common.Document, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.GetDocument")
	defer span.End()
	span.SetAttributes(attribute.Int64("document_id", id))

	doc, err := s.store.GetDocument(ctx, id)
	return doc, fail(span, err)
}

// UpdateDocument merges patch onto the stored document and replaces it. There
// is no version check: the last write wins.
func (s *Service) UpdateDocument(ctx context.Context, id int64, patch DocumentPatch) (common.Document, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.UpdateDocument")
	defer span.End()
	span.SetAttributes(attribute.Int64("document_id", id))

	current, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return common.Document{}, fail(span, err)
	}
	updated, err := patch.apply(current)
	if err != nil {
		return common.Document{}, err
	}
	updated.ID = id
	if err := s.store.UpdateDocument(ctx, updated); err != nil {
		return common.Document{}, fail(span, err)
	}
	logger.Info("Document updated", "document_id", id)
	return updated, nil
}

// DeleteDocument removes the document with its relations and resources. Blob
// payloads are handed to the cleanup notifier, or deleted in place when there
// is none or it fails.
func (s *Service) DeleteDocument(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Catalog.Service.DeleteDocument")
	defer span.End()
	span.SetAttributes(attribute.Int64("document_id", id))

	keys, err := s.store.DeleteDocument(ctx, id)
	if err != nil {
		return fail(span, err)
	}
	logger.Info("Document deleted", "document_id", id, "blobs", len(keys))
	if len(keys) == 0 {
		return nil
	}

	if s.opts.Cleanup != nil {
		err := s.opts.Cleanup.DocumentDeleted(ctx, id, keys)
		if err == nil {
			return nil
		}
		logger.Warn("Failed to enqueue blob cleanup, deleting in place", "document_id", id, "err", err)
	}
	if err := s.blobs.Delete(context.WithoutCancel(ctx), keys...); err != nil {
		span.RecordError(err)
		logger.Error("Failed to delete blobs of deleted document", "document_id", id, "err", err)
	}
	return nil
}

func (s *Service) ListDocuments(ctx context.Context) ([]common.Document, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.ListDocuments")
	defer span.End()

	docs, err := s.store.ListDocuments(ctx)
	return docs, fail(span, err)
}

// SearchDocuments returns the documents matching f. An empty filter returns
// every document.
func (s *Service) SearchDocuments(ctx context.Context, f filter.Filter) ([]common.Document, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.SearchDocuments")
	defer span.End()

	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	out := f.Apply(docs)
	span.SetAttributes(attribute.Int("matches", len(out)))
	return out, nil
}

// ListAreas returns the named georeferences already in use so they can be
// picked again.
func (s *Service) ListAreas(ctx context.Context) ([]common.Georeference, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.ListAreas")
	defer span.End()

	areas, err := s.store.ListAreas(ctx)
	return areas, fail(span, err)
}
