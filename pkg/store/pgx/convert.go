package pgx

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	pgdb "github.com/kiruna-explorer/backend/pkg/db/pgx"
	"github.com/kiruna-explorer/backend/pkg/common"
)

// documentColumns holds the writable columns of a document row.
type documentColumns struct {
	Title        string
	Description  string
	DocumentType string
	Scale        pgtype.Text
	NodeType     string
	Stakeholders []string
	IssuanceDate pgtype.Text
	Language     pgtype.Text
	Pages        pgtype.Text
	Georeference []byte
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func toDocumentColumns(doc common.Document) (documentColumns, error) {
	cols := documentColumns{
		Title:        doc.Title,
		Description:  doc.Description,
		DocumentType: doc.DocumentType,
		Scale:        optionalText(doc.Scale.String()),
		NodeType:     string(doc.NodeType),
		Stakeholders: doc.Stakeholders,
		IssuanceDate: optionalText(doc.IssuanceDate.String()),
		Language:     optionalText(doc.Language),
		Pages:        optionalText(doc.Pages),
	}
	if cols.Stakeholders == nil {
		cols.Stakeholders = []string{}
	}
	if doc.Georeference != nil {
		raw, err := json.Marshal(doc.Georeference)
		if err != nil {
			return documentColumns{}, fmt.Errorf("encode georeference: %w", err)
		}
		cols.Georeference = raw
	}
	return cols, nil
}

func fromDocumentRow(row pgdb.Document) (common.Document, error) {
	doc := common.Document{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		DocumentType: row.DocumentType,
		NodeType:     common.NodeType(row.NodeType),
		Stakeholders: row.Stakeholders,
		Language:     row.Language.String,
		Pages:        row.Pages.String,
	}
	if len(doc.Stakeholders) == 0 {
		doc.Stakeholders = nil
	}
	if row.Scale.Valid {
		doc.Scale = common.ParseScale(row.Scale.String)
	}
	if row.IssuanceDate.Valid && row.IssuanceDate.String != "" {
		d, err := common.ParsePartialDate(row.IssuanceDate.String)
		if err != nil {
			return common.Document{}, fmt.Errorf("document %d: stored issuance date: %w", row.ID, err)
		}
		doc.IssuanceDate = d
	}
	if len(row.Georeference) > 0 && string(row.Georeference) != "null" {
		var g common.Georeference
		if err := json.Unmarshal(row.Georeference, &g); err != nil {
			return common.Document{}, fmt.Errorf("document %d: stored georeference: %w", row.ID, err)
		}
		doc.Georeference = &g
	}
	return doc, nil
}

func fromRelationRow(row pgdb.Relation) common.Relation {
	return common.Relation{
		ID:          row.ID,
		DocumentID1: row.DocumentId1,
		DocumentID2: row.DocumentId2,
		Type:        common.RelationType(row.LinkType),
		CreatedAt:   row.CreatedAt.Time,
	}
}

func fromResourceRow(row pgdb.Resource) common.Resource {
	return common.Resource{
		ID:         row.ID,
		DocumentID: row.DocumentID,
		Kind:       common.ResourceKind(row.Kind),
		FileName:   row.FileName,
		MimeType:   row.MimeType,
		Size:       row.Size,
		FileKey:    row.FileKey,
		CreatedAt:  row.CreatedAt.Time,
	}
}
