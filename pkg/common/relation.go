package common

import (
	"fmt"
	"strings"
	"time"
)

// RelationType labels the link between two documents.
type RelationType string

const (
	DirectConsequence     RelationType = "direct consequence"
	CollateralConsequence RelationType = "collateral consequence"
	Prevision             RelationType = "prevision"
	Update                RelationType = "update"
)

var RelationTypes = []RelationType{
	DirectConsequence,
	CollateralConsequence,
	Prevision,
	Update,
}

// ParseRelationType accepts the label in any letter case, with spaces,
// dashes or underscores between words.
func ParseRelationType(s string) (RelationType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, t := range RelationTypes {
		if string(t) == norm {
			return t, nil
		}
	}
	return "", ValidationError{Field: "linkType", Message: fmt.Sprintf("unknown relation type %q", s)}
}

// Relation links two documents. The pair is stored in the order it was created
// but is otherwise undirected.
type Relation struct {
	ID          int64        `json:"id"`
	DocumentID1 int64        `json:"documentId1"`
	DocumentID2 int64        `json:"documentId2"`
	Type        RelationType `json:"connection"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Touches reports whether the relation has id as one of its endpoints.
func (r Relation) Touches(id int64) bool {
	return r.DocumentID1 == id || r.DocumentID2 == id
}

// Other returns the endpoint that is not id.
func (r Relation) Other(id int64) int64 {
	if r.DocumentID1 == id {
		return r.DocumentID2
	}
	return r.DocumentID1
}

// SamePair reports whether the relation joins a and b in either order.
func (r Relation) SamePair(a, b int64) bool {
	return (r.DocumentID1 == a && r.DocumentID2 == b) || (r.DocumentID1 == b && r.DocumentID2 == a)
}

// Connection is a relation seen from one of its documents.
type Connection struct {
	RelationID int64        `json:"-"`
	OtherID    int64        `json:"documentId"`
	OtherTitle string       `json:"title"`
	Type       RelationType `json:"connection"`
}
