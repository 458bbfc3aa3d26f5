package graph

import (
	"reflect"
	"testing"

	"github.com/kiruna-explorer/backend/pkg/common"
)

func rel(id, a, b int64, t common.RelationType) common.Relation {
	return common.Relation{ID: id, DocumentID1: a, DocumentID2: b, Type: t}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		relations []common.Relation
		want      []Edge
	}{
		{
			name:      "empty input",
			relations: nil,
			want:      []Edge{},
		},
		{
			name:      "single relation",
			relations: []common.Relation{rel(1, 1, 2, common.Update)},
			want: []Edge{{
				ID: "1-2-update", Source: 1, Target: 2, Type: "update",
				Labels: []common.RelationType{common.Update},
			}},
		},
		{
			name: "two labels same direction",
			relations: []common.Relation{
				rel(1, 1, 2, common.DirectConsequence),
				rel(2, 1, 2, common.Prevision),
			},
			want: []Edge{{
				ID: "1-2-default", Source: 1, Target: 2, Type: DefaultEdgeType, Ambiguous: true,
				Labels: []common.RelationType{common.DirectConsequence, common.Prevision},
				Label:  "2 connections",
			}},
		},
		{
			name: "two labels reversed direction",
			relations: []common.Relation{
				rel(1, 1, 2, common.DirectConsequence),
				rel(2, 2, 1, common.Prevision),
			},
			want: []Edge{{
				ID: "1-2-default", Source: 1, Target: 2, Type: DefaultEdgeType, Ambiguous: true,
				Labels: []common.RelationType{common.DirectConsequence, common.Prevision},
				Label:  "2 connections",
			}},
		},
		{
			name: "input order does not matter",
			relations: []common.Relation{
				rel(3, 5, 4, common.Update),
				rel(2, 2, 1, common.Prevision),
				rel(1, 4, 5, common.CollateralConsequence),
			},
			want: []Edge{
				{
					ID: "4-5-default", Source: 4, Target: 5, Type: DefaultEdgeType, Ambiguous: true,
					Labels: []common.RelationType{common.CollateralConsequence, common.Update},
					Label:  "2 connections",
				},
				{
					ID: "2-1-prevision", Source: 2, Target: 1, Type: "prevision",
					Labels: []common.RelationType{common.Prevision},
				},
			},
		},
		{
			name: "repeated label collapses",
			relations: []common.Relation{
				rel(1, 1, 2, common.Update),
				rel(2, 2, 1, common.Update),
			},
			want: []Edge{{
				ID: "1-2-update", Source: 1, Target: 2, Type: "update",
				Labels: []common.RelationType{common.Update},
			}},
		},
		{
			name: "four labels",
			relations: []common.Relation{
				rel(1, 7, 9, common.Update),
				rel(2, 9, 7, common.Prevision),
				rel(3, 7, 9, common.DirectConsequence),
				rel(4, 9, 7, common.CollateralConsequence),
			},
			want: []Edge{{
				ID: "7-9-default", Source: 7, Target: 9, Type: DefaultEdgeType, Ambiguous: true,
				Labels: []common.RelationType{
					common.Update, common.Prevision, common.DirectConsequence, common.CollateralConsequence,
				},
				Label: "4 connections",
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Aggregate(tc.relations)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Aggregate() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	relations := []common.Relation{
		rel(1, 1, 2, common.Update),
		rel(2, 3, 1, common.Prevision),
		rel(3, 2, 1, common.DirectConsequence),
	}
	first := Aggregate(relations)
	second := Aggregate(relations)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Aggregate is not deterministic: %+v vs %+v", first, second)
	}
	if relations[0].ID != 1 || relations[2].ID != 3 {
		t.Fatalf("Aggregate mutated its input")
	}
}

func TestInspect(t *testing.T) {
	edges := Aggregate([]common.Relation{
		rel(1, 1, 2, common.Update),
		rel(2, 2, 1, common.Prevision),
	})

	want := []common.RelationType{common.Update, common.Prevision}
	if got := Inspect(edges, 2, 1); !reflect.DeepEqual(got, want) {
		t.Fatalf("Inspect(2, 1) = %v, want %v", got, want)
	}
	if got := Inspect(edges, 1, 3); got != nil {
		t.Fatalf("Inspect(1, 3) = %v, want nil", got)
	}

	labels := Inspect(edges, 1, 2)
	labels[0] = common.CollateralConsequence
	if edges[0].Labels[0] != common.Update {
		t.Fatalf("Inspect exposed the edge's label slice")
	}
}
