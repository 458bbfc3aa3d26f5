package pgx

import (
	"context"
	"errors"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	pgdb "github.com/kiruna-explorer/backend/pkg/db/pgx"
	"github.com/kiruna-explorer/backend/pkg/common"
)

// AddResources inserts the batch in one transaction.
func (s *CatalogDBStorage) AddResources(ctx context.Context, resources []common.Resource) ([]common.Resource, error) {
	out := make([]common.Resource, 0, len(resources))
	err := s.withTx(ctx, func(q *pgdb.Queries) error {
		for _, r := range resources {
			row, err := q.CreateResource(ctx, pgdb.CreateResourceParams{
				DocumentID: r.DocumentID,
				Kind:       string(r.Kind),
				FileName:   r.FileName,
				MimeType:   r.MimeType,
				Size:       r.Size,
				FileKey:    r.FileKey,
			})
			if err != nil {
				return err
			}
			out = append(out, fromResourceRow(row))
		}
		return nil
	})
	if err != nil {
		return nil, translate("add resources", err)
	}
	return out, nil
}

func (s *CatalogDBStorage) GetResource(ctx context.Context, id int64) (common.Resource, error) {
	row, err := s.queries().GetResource(ctx, id)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return common.Resource{}, common.NotFoundError{Resource: "resource", ID: id}
	}
	if err != nil {
		return common.Resource{}, translate("get resource", err)
	}
	return fromResourceRow(row), nil
}

func (s *CatalogDBStorage) ListResources(ctx context.Context, documentID int64, kind *common.ResourceKind) ([]common.Resource, error) {
	params := pgdb.ListResourcesByDocumentParams{DocumentID: documentID}
	if kind != nil {
		params.Kind = pgtype.Text{String: string(*kind), Valid: true}
	}
	rows, err := s.queries().ListResourcesByDocument(ctx, params)
	if err != nil {
		return nil, translate("list resources", err)
	}
	out := make([]common.Resource, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromResourceRow(row))
	}
	return out, nil
}
