package pgx

import (
	"context"
	"encoding/json"
	"errors"

	pgxv5 "github.com/jackc/pgx/v5"

	pgdb "github.com/kiruna-explorer/backend/pkg/db/pgx"
	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/store"
)

func (s *CatalogDBStorage) CreateDocument(ctx context.Context, doc common.Document) (int64, error) {
	cols, err := toDocumentColumns(doc)
	if err != nil {
		return 0, common.Internal("create document", err)
	}
	id, err := s.queries().CreateDocument(ctx, pgdb.CreateDocumentParams(cols))
	if err != nil {
		return 0, translate("create document", err)
	}
	return id, nil
}

func (s *CatalogDBStorage) GetDocument(ctx context.Context, id int64) (common.Document, error) {
	row, err := s.queries().GetDocument(ctx, id)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return common.Document{}, common.NotFoundError{Resource: "document", ID: id}
	}
	if err != nil {
		return common.Document{}, translate("get document", err)
	}
	doc, err := fromDocumentRow(row)
	if err != nil {
		return common.Document{}, common.Internal("get document", err)
	}
	return doc, nil
}

func (s *CatalogDBStorage) UpdateDocument(ctx context.Context, doc common.Document) error {
	cols, err := toDocumentColumns(doc)
	if err != nil {
		return common.Internal("update document", err)
	}
	n, err := s.queries().UpdateDocument(ctx, pgdb.UpdateDocumentParams{
		ID:           doc.ID,
		Title:        cols.Title,
		Description:  cols.Description,
		DocumentType: cols.DocumentType,
		Scale:        cols.Scale,
		NodeType:     cols.NodeType,
		Stakeholders: cols.Stakeholders,
		IssuanceDate: cols.IssuanceDate,
		Language:     cols.Language,
		Pages:        cols.Pages,
		Georeference: cols.Georeference,
	})
	if err != nil {
		return translate("update document", err)
	}
	if n == 0 {
		return common.NotFoundError{Resource: "document", ID: doc.ID}
	}
	return nil
}

// DeleteDocument collects the blob keys of the document's resources and
// deletes the row in one transaction. The cascade removes relations and
// resource rows.
func (s *CatalogDBStorage) DeleteDocument(ctx context.Context, id int64) ([]string, error) {
	var keys []string
	err := s.withTx(ctx, func(q *pgdb.Queries) error {
		var err error
		keys, err = q.ListFileKeysByDocument(ctx, id)
		if err != nil {
			return err
		}
		n, err := q.DeleteDocument(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return common.NotFoundError{Resource: "document", ID: id}
		}
		return nil
	})
	if err != nil {
		return nil, translate("delete document", err)
	}
	return keys, nil
}

func (s *CatalogDBStorage) ListDocuments(ctx context.Context) ([]common.Document, error) {
	rows, err := s.queries().ListDocuments(ctx)
	if err != nil {
		return nil, translate("list documents", err)
	}
	out := make([]common.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := fromDocumentRow(row)
		if err != nil {
			return nil, common.Internal("list documents", err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *CatalogDBStorage) MissingDocuments(ctx context.Context, ids ...int64) ([]int64, error) {
	ids = store.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.queries().GetDocumentIDs(ctx, ids)
	if err != nil {
		return nil, translate("check documents", err)
	}
	existing := make(map[int64]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (s *CatalogDBStorage) ListAreas(ctx context.Context) ([]common.Georeference, error) {
	rows, err := s.queries().ListNamedGeoreferences(ctx)
	if err != nil {
		return nil, translate("list areas", err)
	}
	out := make([]common.Georeference, 0, len(rows))
	for _, raw := range rows {
		var g common.Georeference
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, common.Internal("list areas", err)
		}
		out = append(out, g)
	}
	return out, nil
}
