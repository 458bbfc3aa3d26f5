package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiruna-explorer/backend/pkg/common"
)

func seed(t *testing.T, s *Store, titles ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(titles))
	for _, title := range titles {
		id, err := s.CreateDocument(context.Background(), common.Document{
			Title:        title,
			DocumentType: "Text",
			NodeType:     common.NodeInformative,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestStore_DocumentRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	doc := common.Document{
		Title:        "Development Plan",
		DocumentType: "Prescriptive",
		Scale:        common.RatioScale(7500),
		NodeType:     common.NodePrescriptive,
		Stakeholders: []string{"Kiruna kommun", "White Arkitekter"},
		IssuanceDate: common.MustParsePartialDate("2014-03-17"),
		Language:     "Swedish",
		Pages:        "111",
		Georeference: &common.Georeference{
			Type:    common.GeoPolygon,
			Name:    "Centre",
			Polygon: []common.Coordinate{{Lat: 67.85, Lng: 20.2}, {Lat: 67.86, Lng: 20.21}, {Lat: 67.84, Lng: 20.22}},
		},
	}

	id, err := s.CreateDocument(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.GetDocument(ctx, id)
	require.NoError(t, err)
	doc.ID = id
	assert.Equal(t, doc, got)

	got.Stakeholders[0] = "changed"
	got.Georeference.Polygon[0].Lat = 0
	again, err := s.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kiruna kommun", again.Stakeholders[0])
	assert.Equal(t, 67.85, again.Georeference.Polygon[0].Lat)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	s := NewStore()
	_, err := s.GetDocument(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_UpdateDocument(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seed(t, s, "A")

	doc, err := s.GetDocument(ctx, ids[0])
	require.NoError(t, err)
	doc.Title = "A, revised"
	require.NoError(t, s.UpdateDocument(ctx, doc))

	got, err := s.GetDocument(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "A, revised", got.Title)

	doc.ID = 99
	assert.ErrorIs(t, s.UpdateDocument(ctx, doc), common.ErrNotFound)
}

func TestStore_Link(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seed(t, s, "A", "B")

	created, err := s.Link(ctx, ids[0], ids[1], common.Update)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Link(ctx, ids[1], ids[0], common.Update)
	require.NoError(t, err)
	assert.False(t, created, "reversed duplicate must be a no-op")

	created, err = s.Link(ctx, ids[1], ids[0], common.Prevision)
	require.NoError(t, err)
	assert.True(t, created)

	_, err = s.Link(ctx, ids[0], ids[0], common.Update)
	assert.ErrorIs(t, err, common.ErrSelfLink)

	_, err = s.Link(ctx, ids[0], 77, common.Update)
	assert.ErrorIs(t, err, common.ErrInvalidReference)

	rels, err := s.ListRelations(ctx)
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.Equal(t, common.Update, rels[0].Type)
	assert.Equal(t, ids[1], rels[1].DocumentID1)
}

func TestStore_UnlinkIsSymmetric(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seed(t, s, "A", "B")

	_, err := s.Link(ctx, ids[0], ids[1], common.DirectConsequence)
	require.NoError(t, err)

	require.NoError(t, s.Unlink(ctx, ids[1], ids[0], common.DirectConsequence))
	assert.ErrorIs(t, s.Unlink(ctx, ids[0], ids[1], common.DirectConsequence), common.ErrNotFound)
}

func TestStore_ListRelationsByDocument(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seed(t, s, "A", "B", "C")

	_, err := s.Link(ctx, ids[0], ids[1], common.Update)
	require.NoError(t, err)
	_, err = s.Link(ctx, ids[2], ids[0], common.Prevision)
	require.NoError(t, err)

	conns, err := s.ListRelationsByDocument(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, []common.Connection{
		{RelationID: 1, OtherID: ids[1], OtherTitle: "B", Type: common.Update},
		{RelationID: 2, OtherID: ids[2], OtherTitle: "C", Type: common.Prevision},
	}, conns)

	_, err = s.ListRelationsByDocument(ctx, 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_DeleteDocumentCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seed(t, s, "A", "B")

	_, err := s.Link(ctx, ids[0], ids[1], common.Update)
	require.NoError(t, err)
	_, err = s.AddResources(ctx, []common.Resource{
		{DocumentID: ids[0], Kind: common.KindOriginal, FileName: "a.pdf", FileKey: "k1"},
		{DocumentID: ids[0], Kind: common.KindAttachment, FileName: "b.png", FileKey: "k2"},
		{DocumentID: ids[1], Kind: common.KindOriginal, FileName: "c.pdf", FileKey: "k3"},
	})
	require.NoError(t, err)

	keys, err := s.DeleteDocument(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keys)

	res, err := s.ListResources(ctx, ids[0], nil)
	require.NoError(t, err)
	assert.Empty(t, res)

	rels, err := s.ListRelations(ctx)
	require.NoError(t, err)
	assert.Empty(t, rels)

	res, err = s.ListResources(ctx, ids[1], nil)
	require.NoError(t, err)
	assert.Len(t, res, 1)

	_, err = s.DeleteDocument(ctx, ids[0])
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_AddResources(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ids := seed(t, s, "A")

	_, err := s.AddResources(ctx, []common.Resource{
		{DocumentID: ids[0], Kind: common.KindOriginal, FileName: "a.pdf"},
		{DocumentID: 5, Kind: common.KindOriginal, FileName: "b.pdf"},
	})
	assert.ErrorIs(t, err, common.ErrInvalidReference)

	all, err := s.ListResources(ctx, ids[0], nil)
	require.NoError(t, err)
	assert.Empty(t, all, "a failed batch must not record anything")

	stored, err := s.AddResources(ctx, []common.Resource{
		{DocumentID: ids[0], Kind: common.KindOriginal, FileName: "a.pdf"},
		{DocumentID: ids[0], Kind: common.KindAttachment, FileName: "b.png"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotZero(t, stored[0].ID)
	assert.False(t, stored[0].CreatedAt.IsZero())

	kind := common.KindAttachment
	attachments, err := s.ListResources(ctx, ids[0], &kind)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "b.png", attachments[0].FileName)

	got, err := s.GetResource(ctx, stored[0].ID)
	require.NoError(t, err)
	assert.Equal(t, stored[0], got)

	_, err = s.GetResource(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_MissingDocumentsAndAreas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, name := range []string{"Lake", "Centre", "Lake", ""} {
		_, err := s.CreateDocument(ctx, common.Document{
			Title:        "doc " + name,
			DocumentType: "Text",
			Georeference: &common.Georeference{Type: common.GeoPoint, Name: name, Point: common.Coordinate{Lat: 67.8, Lng: 20.2}},
		})
		require.NoError(t, err)
	}

	missing, err := s.MissingDocuments(ctx, 1, 7, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, missing)

	areas, err := s.ListAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "Centre", areas[0].Name)
	assert.Equal(t, "Lake", areas[1].Name)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.CreateDocument(ctx, common.Document{Title: "concurrent", DocumentType: "Text"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.ListDocuments(ctx)
		}()
	}
	wg.Wait()

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 50)
}

func TestBlobStore(t *testing.T) {
	b := NewBlobStore()
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "documents/1/original/x.pdf", "application/pdf", []byte("pdf")))
	data, err := b.Get(ctx, "documents/1/original/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), data)

	require.NoError(t, b.Delete(ctx, "documents/1/original/x.pdf", "unknown"))
	_, err = b.Get(ctx, "documents/1/original/x.pdf")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Empty(t, b.Keys())
}
