package graph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/kiruna-explorer/backend/pkg/common"
)

// DefaultEdgeType is the type of an edge that stands for several relation
// types at once.
const DefaultEdgeType = "default"

// Edge is the single renderable connection between two documents. It is
// derived from the relation set on every read and never stored.
type Edge struct {
	ID     string `json:"id"`
	Source int64  `json:"source"`
	Target int64  `json:"target"`
	// Type is the relation type, or DefaultEdgeType when Ambiguous.
	Type      string                `json:"type"`
	Ambiguous bool                  `json:"ambiguous"`
	Labels    []common.RelationType `json:"labels"`
	// Label is the count caption shown on ambiguous edges.
	Label string `json:"label,omitempty"`
}

type pairKey struct {
	lo, hi int64
}

func keyOf(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Aggregate collapses relations into one edge per unordered document pair.
// Relations are taken in creation order (ascending id), which fixes the label
// order and the source/target of every edge. Edges come out in the order their
// pair first appears.
func Aggregate(relations []common.Relation) []Edge {
	sorted := slices.Clone(relations)
	slices.SortStableFunc(sorted, func(a, b common.Relation) int {
		return cmp.Compare(a.ID, b.ID)
	})

	index := make(map[pairKey]int)
	edges := make([]Edge, 0)
	for _, r := range sorted {
		k := keyOf(r.DocumentID1, r.DocumentID2)
		i, ok := index[k]
		if !ok {
			index[k] = len(edges)
			edges = append(edges, Edge{
				Source: r.DocumentID1,
				Target: r.DocumentID2,
				Labels: []common.RelationType{r.Type},
			})
			continue
		}
		if !slices.Contains(edges[i].Labels, r.Type) {
			edges[i].Labels = append(edges[i].Labels, r.Type)
		}
	}

	for i := range edges {
		e := &edges[i]
		if len(e.Labels) == 1 {
			e.Type = string(e.Labels[0])
		} else {
			e.Type = DefaultEdgeType
			e.Ambiguous = true
			e.Label = fmt.Sprintf("%d connections", len(e.Labels))
		}
		e.ID = fmt.Sprintf("%d-%d-%s", e.Source, e.Target, e.Type)
	}
	return edges
}

// Inspect returns the relation types behind the edge joining a and b, in
// either order. It returns nil when the documents are not connected.
func Inspect(edges []Edge, a, b int64) []common.RelationType {
	k := keyOf(a, b)
	for _, e := range edges {
		if keyOf(e.Source, e.Target) == k {
			return slices.Clone(e.Labels)
		}
	}
	return nil
}
