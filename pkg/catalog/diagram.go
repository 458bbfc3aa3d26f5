package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/graph"
	"github.com/kiruna-explorer/backend/pkg/layout"
)

// Node is a document placed on the diagram.
type Node struct {
	ID           int64              `json:"id"`
	Title        string             `json:"title"`
	NodeType     common.NodeType    `json:"nodeType"`
	DocumentType string             `json:"documentType"`
	Scale        common.Scale       `json:"scale"`
	IssuanceDate common.PartialDate `json:"issuanceDate"`
	Position     layout.Position    `json:"position"`
}

// Diagram is the time by scale view of the catalogue.
type Diagram struct {
	Nodes []Node              `json:"nodes"`
	Edges []graph.Edge        `json:"edges"`
	Axis  []layout.YearColumn `json:"axis"`
}

// Diagram lays out every document and merges the relations into one edge per
// document pair. Positions depend on the whole set: adding a document to a
// year widens that column and shifts every later one.
func (s *Service) Diagram(ctx context.Context) (Diagram, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.Diagram")
	defer span.End()

	var (
		docs []common.Document
		rels []common.Relation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		docs, err = s.store.ListDocuments(gctx)
		return err
	})
	g.Go(func() (err error) {
		rels, err = s.store.ListRelations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Diagram{}, fail(span, err)
	}

	l := layout.Compute(docs, s.opts.Layout)
	nodes := make([]Node, 0, len(docs))
	for _, d := range docs {
		nodes = append(nodes, Node{
			ID:           d.ID,
			Title:        d.Title,
			NodeType:     d.NodeType,
			DocumentType: d.DocumentType,
			Scale:        d.LayoutScale(),
			IssuanceDate: d.IssuanceDate,
			Position:     l.Positions[d.ID],
		})
	}
	return Diagram{Nodes: nodes, Edges: graph.Aggregate(rels), Axis: l.Axis}, nil
}

// InspectEdge returns every label of the edge between a and b, in creation
// order. The argument order does not matter.
func (s *Service) InspectEdge(ctx context.Context, a, b int64) ([]common.RelationType, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.InspectEdge")
	defer span.End()

	if err := s.ensureDocuments(ctx, a, b); err != nil {
		return nil, fail(span, err)
	}
	rels, err := s.store.ListRelations(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	labels := graph.Inspect(graph.Aggregate(rels), a, b)
	if labels == nil {
		return nil, fail(span, common.NotFoundError{Resource: "edge"})
	}
	return labels, nil
}
