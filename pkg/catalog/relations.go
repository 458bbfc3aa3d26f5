package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/logger"
)

// Link relates two existing documents. Linking a pair that already carries
// the type is a successful no-op reported as created=false.
func (s *Service) Link(ctx context.Context, id1, id2 int64, label string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.Link")
	defer span.End()
	span.SetAttributes(attribute.Int64("document_id1", id1), attribute.Int64("document_id2", id2))

	t, err := common.ParseRelationType(label)
	if err != nil {
		return false, err
	}
	if id1 == id2 {
		return false, common.ErrSelfLink
	}
	if err := s.ensureDocuments(ctx, id1, id2); err != nil {
		return false, fail(span, err)
	}

	created, err := s.store.Link(ctx, id1, id2, t)
	if err != nil {
		return false, fail(span, err)
	}
	if created {
		logger.Info("Documents linked", "document_id1", id1, "document_id2", id2, "type", t)
	}
	return created, nil
}

// Unlink removes the relation whichever order the pair was linked in.
func (s *Service) Unlink(ctx context.Context, id1, id2 int64, label string) error {
	ctx, span := tracer.Start(ctx, "Catalog.Service.Unlink")
	defer span.End()

	t, err := common.ParseRelationType(label)
	if err != nil {
		return err
	}
	if err := s.store.Unlink(ctx, id1, id2, t); err != nil {
		return fail(span, err)
	}
	logger.Info("Documents unlinked", "document_id1", id1, "document_id2", id2, "type", t)
	return nil
}

// ListConnections returns the relations of a document, each seen from the
// document: the other end, its title and the type.
func (s *Service) ListConnections(ctx context.Context, id int64) ([]common.Connection, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.ListConnections")
	defer span.End()

	conns, err := s.store.ListRelationsByDocument(ctx, id)
	return conns, fail(span, err)
}

func (s *Service) ListRelations(ctx context.Context) ([]common.Relation, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.ListRelations")
	defer span.End()

	rels, err := s.store.ListRelations(ctx)
	return rels, fail(span, err)
}
