// Package memory holds in-process implementations of the store interfaces.
// They back the tests and the server when no database is configured.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/store"
)

var _ store.CatalogStorage = (*Store)(nil)

// Store is an in-memory store.CatalogStorage.
type Store struct {
	mu        sync.RWMutex
	documents map[int64]common.Document
	relations map[int64]common.Relation
	resources map[int64]common.Resource

	nextDocumentID int64
	nextRelationID int64
	nextResourceID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		documents: make(map[int64]common.Document),
		relations: make(map[int64]common.Relation),
		resources: make(map[int64]common.Resource),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func documentNotFound(id int64) error {
	return common.NotFoundError{Resource: "document", ID: id}
}

// CreateDocument stores a copy of doc under a fresh id.
func (s *Store) CreateDocument(_ context.Context, doc common.Document) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDocumentID++
	doc = cloneDocument(doc)
	doc.ID = s.nextDocumentID
	s.documents[doc.ID] = doc
	return doc.ID, nil
}

func (s *Store) GetDocument(_ context.Context, id int64) (common.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return common.Document{}, documentNotFound(id)
	}
	return cloneDocument(doc), nil
}

func (s *Store) UpdateDocument(_ context.Context, doc common.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[doc.ID]; !ok {
		return documentNotFound(doc.ID)
	}
	s.documents[doc.ID] = cloneDocument(doc)
	return nil
}

// DeleteDocument removes the document together with its relations and
// resources, returning the blob keys of the removed resources.
func (s *Store) DeleteDocument(_ context.Context, id int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return nil, documentNotFound(id)
	}
	delete(s.documents, id)

	for rid, r := range s.relations {
		if r.Touches(id) {
			delete(s.relations, rid)
		}
	}

	var removed []common.Resource
	for rid, r := range s.resources {
		if r.DocumentID == id {
			removed = append(removed, r)
			delete(s.resources, rid)
		}
	}
	slices.SortFunc(removed, func(a, b common.Resource) int { return cmp.Compare(a.ID, b.ID) })

	keys := make([]string, 0, len(removed))
	for _, r := range removed {
		keys = append(keys, r.FileKey)
	}
	return keys, nil
}

// ListDocuments returns every document in ascending id order.
func (s *Store) ListDocuments(_ context.Context) ([]common.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.Document, 0, len(s.documents))
	for _, d := range s.documents {
		out = append(out, cloneDocument(d))
	}
	slices.SortFunc(out, func(a, b common.Document) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *Store) MissingDocuments(_ context.Context, ids ...int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []int64
	for _, id := range store.UniqueIDs(ids) {
		if _, ok := s.documents[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ListAreas returns one georeference per name, taken from the lowest document
// id using it, sorted by name.
func (s *Store) ListAreas(ctx context.Context) ([]common.Georeference, error) {
	docs, err := s.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]common.Georeference, 0)
	for _, d := range docs {
		if d.Georeference == nil || d.Georeference.Name == "" {
			continue
		}
		if _, ok := seen[d.Georeference.Name]; ok {
			continue
		}
		seen[d.Georeference.Name] = struct{}{}
		out = append(out, *d.Georeference)
	}
	slices.SortFunc(out, func(a, b common.Georeference) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *Store) Link(_ context.Context, id1, id2 int64, t common.RelationType) (bool, error) {
	if id1 == id2 {
		return false, common.ErrSelfLink
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id1]; !ok {
		return false, common.ErrInvalidReference
	}
	if _, ok := s.documents[id2]; !ok {
		return false, common.ErrInvalidReference
	}
	for _, r := range s.relations {
		if r.Type == t && r.SamePair(id1, id2) {
			return false, nil
		}
	}

	s.nextRelationID++
	s.relations[s.nextRelationID] = common.Relation{
		ID:          s.nextRelationID,
		DocumentID1: id1,
		DocumentID2: id2,
		Type:        t,
		CreatedAt:   s.now(),
	}
	return true, nil
}

// Unlink removes the relation regardless of the order the pair was stored in.
func (s *Store) Unlink(_ context.Context, id1, id2 int64, t common.RelationType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for rid, r := range s.relations {
		if r.Type == t && r.SamePair(id1, id2) {
			delete(s.relations, rid)
			return nil
		}
	}
	return common.NotFoundError{Resource: "relation"}
}

func (s *Store) ListRelations(_ context.Context) ([]common.Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedRelations(func(common.Relation) bool { return true }), nil
}

func (s *Store) ListRelationsByDocument(_ context.Context, id int64) ([]common.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.documents[id]; !ok {
		return nil, documentNotFound(id)
	}

	rels := s.sortedRelations(func(r common.Relation) bool { return r.Touches(id) })
	out := make([]common.Connection, 0, len(rels))
	for _, r := range rels {
		other := r.Other(id)
		out = append(out, common.Connection{
			RelationID: r.ID,
			OtherID:    other,
			OtherTitle: s.documents[other].Title,
			Type:       r.Type,
		})
	}
	return out, nil
}

func (s *Store) sortedRelations(keep func(common.Relation) bool) []common.Relation {
	out := make([]common.Relation, 0)
	for _, r := range s.relations {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b common.Relation) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// AddResources records the batch only if every referenced document exists.
func (s *Store) AddResources(_ context.Context, resources []common.Resource) ([]common.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range resources {
		if _, ok := s.documents[r.DocumentID]; !ok {
			return nil, common.ErrInvalidReference
		}
	}

	out := make([]common.Resource, 0, len(resources))
	now := s.now()
	for _, r := range resources {
		s.nextResourceID++
		r.ID = s.nextResourceID
		r.CreatedAt = now
		s.resources[r.ID] = r
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) GetResource(_ context.Context, id int64) (common.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	if !ok {
		return common.Resource{}, common.NotFoundError{Resource: "resource", ID: id}
	}
	return r, nil
}

func (s *Store) ListResources(_ context.Context, documentID int64, kind *common.ResourceKind) ([]common.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.Resource, 0)
	for _, r := range s.resources {
		if r.DocumentID != documentID {
			continue
		}
		if kind != nil && r.Kind != *kind {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b common.Resource) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func cloneDocument(d common.Document) common.Document {
	d.Stakeholders = slices.Clone(d.Stakeholders)
	if d.Georeference != nil {
		g := *d.Georeference
		g.Polygon = slices.Clone(g.Polygon)
		d.Georeference = &g
	}
	return d
}
