// Package filter implements attribute search over documents.
package filter

import (
	"strings"

	"github.com/kiruna-explorer/backend/pkg/common"
)

// Filter is a conjunction of predicates. A nil field does not narrow the
// result.
type Filter struct {
	// Title and Description match a case-insensitive substring.
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`

	// DocumentType, NodeType, Language and Scale match exactly, case-sensitive.
	// Scale compares against the canonical text of the document's scale.
	DocumentType *string          `json:"documentType,omitempty"`
	NodeType     *common.NodeType `json:"nodeType,omitempty"`
	Language     *string          `json:"language,omitempty"`
	Scale        *string          `json:"scale,omitempty"`

	// Stakeholders lists labels that must all be present on the document.
	Stakeholders []string `json:"stakeholders,omitempty"`

	// IssuedFrom and IssuedTo bound the issuance date, inclusive. Bounds are
	// compared at the coarser of the two precisions so "2022" matches any date
	// in 2022. Undated documents never match a date bound.
	IssuedFrom *common.PartialDate `json:"issuedFrom,omitempty"`
	IssuedTo   *common.PartialDate `json:"issuedTo,omitempty"`

	// Georeferenced selects documents with (true) or without (false) a
	// georeference.
	Georeferenced *bool `json:"georeferenced,omitempty"`
}

// IsEmpty reports whether f has no predicate.
func (f Filter) IsEmpty() bool {
	return f.Title == nil &&
		f.Description == nil &&
		f.DocumentType == nil &&
		f.NodeType == nil &&
		f.Language == nil &&
		f.Scale == nil &&
		len(f.Stakeholders) == 0 &&
		!hasBound(f.IssuedFrom) &&
		!hasBound(f.IssuedTo) &&
		f.Georeferenced == nil
}

// Match reports whether d satisfies every predicate of f.
func (f Filter) Match(d common.Document) bool {
	if f.Title != nil && !containsFold(d.Title, *f.Title) {
		return false
	}
	if f.Description != nil && !containsFold(d.Description, *f.Description) {
		return false
	}
	if f.DocumentType != nil && d.DocumentType != *f.DocumentType {
		return false
	}
	if f.NodeType != nil && d.NodeType != *f.NodeType {
		return false
	}
	if f.Language != nil && d.Language != *f.Language {
		return false
	}
	if f.Scale != nil && d.Scale.String() != *f.Scale {
		return false
	}
	for _, s := range f.Stakeholders {
		if !d.HasStakeholder(s) {
			return false
		}
	}
	from, to := hasBound(f.IssuedFrom), hasBound(f.IssuedTo)
	if from || to {
		if d.IssuanceDate.IsZero() {
			return false
		}
		if from && d.IssuanceDate.Compare(*f.IssuedFrom) < 0 {
			return false
		}
		if to && d.IssuanceDate.Compare(*f.IssuedTo) > 0 {
			return false
		}
	}
	if f.Georeferenced != nil && d.IsMunicipalityWide() == *f.Georeferenced {
		return false
	}
	return true
}

// Apply returns the documents matching f in input order. The result is never
// nil.
func (f Filter) Apply(docs []common.Document) []common.Document {
	if f.IsEmpty() {
		return append(make([]common.Document, 0, len(docs)), docs...)
	}
	out := make([]common.Document, 0, len(docs))
	for _, d := range docs {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// hasBound reports whether a date bound is set. An empty date decodes to the
// zero value and counts as absent.
func hasBound(d *common.PartialDate) bool {
	return d != nil && !d.IsZero()
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
