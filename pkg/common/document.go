package common

import (
	"fmt"
	"slices"
	"strings"
)

// NodeType is the kind of planning artifact a document represents. It picks
// the icon of the node on the diagram.
type NodeType string

const (
	NodeDesign       NodeType = "Design document"
	NodePrescriptive NodeType = "Prescriptive document"
	NodeInformative  NodeType = "Informative document"
	NodeTechnical    NodeType = "Technical document"
	NodeMaterial     NodeType = "Material effect"
	NodeAgreement    NodeType = "Agreement"
	NodeConflict     NodeType = "Conflict"
	NodeConsultation NodeType = "Consultation"
)

// NodeTypes lists every accepted node type.
var NodeTypes = []NodeType{
	NodeDesign,
	NodePrescriptive,
	NodeInformative,
	NodeTechnical,
	NodeMaterial,
	NodeAgreement,
	NodeConflict,
	NodeConsultation,
}

// ParseNodeType matches s case-insensitively against the known node types.
func ParseNodeType(s string) (NodeType, error) {
	s = strings.TrimSpace(s)
	for _, t := range NodeTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown node type %q", s)
}

// Document is a planning artifact in the catalogue.
//
// DocumentType is the category shown to users. Scale drives the vertical lane
// on the diagram; when it is empty the category is used instead, which keeps
// documents created through the single combined field placed correctly.
type Document struct {
	ID           int64         `json:"documentId"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	DocumentType string        `json:"documentType"`
	Scale        Scale         `json:"scale"`
	NodeType     NodeType      `json:"nodeType"`
	Stakeholders []string      `json:"stakeholders"`
	IssuanceDate PartialDate   `json:"issuanceDate"`
	Language     string        `json:"language,omitempty"`
	Pages        string        `json:"pages,omitempty"`
	Georeference *Georeference `json:"georeference"`
}

// LayoutScale returns the scale used to place the document vertically.
func (d Document) LayoutScale() Scale {
	if !d.Scale.IsZero() {
		return d.Scale
	}
	return ParseScale(d.DocumentType)
}

// HasStakeholder reports whether label is one of the document's stakeholders.
func (d Document) HasStakeholder(label string) bool {
	return slices.Contains(d.Stakeholders, label)
}

// IsMunicipalityWide reports whether the document has no georeference.
func (d Document) IsMunicipalityWide() bool {
	return d.Georeference == nil
}
