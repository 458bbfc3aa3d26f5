package catalog

import (
	"strings"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/store"
)

// DocumentInput carries the fields of a new document as the client sends
// them. Scale is optional; when it is empty the diagram places the document by
// DocumentType.
type DocumentInput struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	DocumentType string               `json:"documentType"`
	Scale        string               `json:"scale"`
	NodeType     string               `json:"nodeType"`
	Stakeholders []string             `json:"stakeholders"`
	IssuanceDate string               `json:"issuanceDate"`
	Language     string               `json:"language"`
	Pages        string               `json:"pages"`
	Georeference *common.Georeference `json:"georeference"`
}

// DocumentPatch changes some fields of a document. Nil fields are left alone.
// An empty string clears Scale, IssuanceDate, Language and Pages.
type DocumentPatch struct {
	Title             *string              `json:"title"`
	Description       *string              `json:"description"`
	DocumentType      *string              `json:"documentType"`
	Scale             *string              `json:"scale"`
	NodeType          *string              `json:"nodeType"`
	Stakeholders      *[]string            `json:"stakeholders"`
	IssuanceDate      *string              `json:"issuanceDate"`
	Language          *string              `json:"language"`
	Pages             *string              `json:"pages"`
	Georeference      *common.Georeference `json:"georeference"`
	ClearGeoreference bool                 `json:"clearGeoreference"`
}

func (in DocumentInput) document() (common.Document, error) {
	doc := common.Document{
		Title:        clean(in.Title),
		Description:  store.SanitizeText(in.Description),
		DocumentType: clean(in.DocumentType),
		Stakeholders: store.DedupeStrings(in.Stakeholders),
		Language:     clean(in.Language),
		Pages:        clean(in.Pages),
		Scale:        common.ParseScale(in.Scale),
		Georeference: in.Georeference,
	}

	nt, err := parseNodeType(in.NodeType)
	if err != nil {
		return common.Document{}, err
	}
	doc.NodeType = nt

	if doc.IssuanceDate, err = parseIssuanceDate(in.IssuanceDate); err != nil {
		return common.Document{}, err
	}
	return doc, validateDocument(doc)
}

func (p DocumentPatch) apply(doc common.Document) (common.Document, error) {
	if p.Title != nil {
		doc.Title = clean(*p.Title)
	}
	if p.Description != nil {
		doc.Description = store.SanitizeText(*p.Description)
	}
	if p.DocumentType != nil {
		doc.DocumentType = clean(*p.DocumentType)
	}
	if p.Scale != nil {
		doc.Scale = common.ParseScale(*p.Scale)
	}
	if p.NodeType != nil {
		nt, err := parseNodeType(*p.NodeType)
		if err != nil {
			return common.Document{}, err
		}
		doc.NodeType = nt
	}
	if p.Stakeholders != nil {
		doc.Stakeholders = store.DedupeStrings(*p.Stakeholders)
	}
	if p.IssuanceDate != nil {
		d, err := parseIssuanceDate(*p.IssuanceDate)
		if err != nil {
			return common.Document{}, err
		}
		doc.IssuanceDate = d
	}
	if p.Language != nil {
		doc.Language = clean(*p.Language)
	}
	if p.Pages != nil {
		doc.Pages = clean(*p.Pages)
	}
	switch {
	case p.ClearGeoreference:
		doc.Georeference = nil
	case p.Georeference != nil:
		g := *p.Georeference
		doc.Georeference = &g
	}
	return doc, validateDocument(doc)
}

func clean(s string) string {
	return strings.TrimSpace(store.SanitizeText(s))
}

func parseNodeType(s string) (common.NodeType, error) {
	nt, err := common.ParseNodeType(s)
	if err != nil {
		return "", common.ValidationError{Field: "nodeType", Message: err.Error()}
	}
	return nt, nil
}

func parseIssuanceDate(s string) (common.PartialDate, error) {
	if strings.TrimSpace(s) == "" {
		return common.PartialDate{}, nil
	}
	d, err := common.ParsePartialDate(s)
	if err != nil {
		return common.PartialDate{}, common.ValidationError{Field: "issuanceDate", Message: err.Error()}
	}
	return d, nil
}

func validateDocument(doc common.Document) error {
	if doc.Title == "" {
		return common.ValidationError{Field: "title", Message: "must not be empty"}
	}
	if doc.DocumentType == "" {
		return common.ValidationError{Field: "documentType", Message: "must not be empty"}
	}
	if doc.Georeference != nil {
		if err := doc.Georeference.Validate(); err != nil {
			return err
		}
	}
	return nil
}
