package pgx

import (
	"context"
	"errors"

	pgxv5 "github.com/jackc/pgx/v5"

	pgdb "github.com/kiruna-explorer/backend/pkg/db/pgx"
	"github.com/kiruna-explorer/backend/pkg/common"
)

// Link inserts the relation. The unique index on the unordered pair and type
// turns a repeated call into a no-op that reports created=false.
func (s *CatalogDBStorage) Link(ctx context.Context, id1, id2 int64, t common.RelationType) (bool, error) {
	if id1 == id2 {
		return false, common.ErrSelfLink
	}
	_, err := s.queries().CreateRelation(ctx, pgdb.CreateRelationParams{
		DocumentId1: id1,
		DocumentId2: id2,
		LinkType:    string(t),
	})
	if errors.Is(err, pgxv5.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, translate("link documents", err)
	}
	return true, nil
}

func (s *CatalogDBStorage) Unlink(ctx context.Context, id1, id2 int64, t common.RelationType) error {
	n, err := s.queries().DeleteRelation(ctx, pgdb.DeleteRelationParams{
		DocumentId1: id1,
		DocumentId2: id2,
		LinkType:    string(t),
	})
	if err != nil {
		return translate("unlink documents", err)
	}
	if n == 0 {
		return common.NotFoundError{Resource: "relation"}
	}
	return nil
}

func (s *CatalogDBStorage) ListRelations(ctx context.Context) ([]common.Relation, error) {
	rows, err := s.queries().ListRelations(ctx)
	if err != nil {
		return nil, translate("list relations", err)
	}
	out := make([]common.Relation, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRelationRow(row))
	}
	return out, nil
}

func (s *CatalogDBStorage) ListRelationsByDocument(ctx context.Context, id int64) ([]common.Connection, error) {
	missing, err := s.MissingDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, common.NotFoundError{Resource: "document", ID: id}
	}

	rows, err := s.queries().ListConnectionsByDocument(ctx, id)
	if err != nil {
		return nil, translate("list connections", err)
	}
	out := make([]common.Connection, 0, len(rows))
	for _, row := range rows {
		out = append(out, common.Connection{
			RelationID: row.ID,
			OtherID:    row.OtherID,
			OtherTitle: row.OtherTitle,
			Type:       common.RelationType(row.LinkType),
		})
	}
	return out, nil
}
