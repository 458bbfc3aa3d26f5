package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/filter"
	"github.com/kiruna-explorer/backend/pkg/layout"
	"github.com/kiruna-explorer/backend/pkg/store/memory"
)

type fixture struct {
	svc   *Service
	store *memory.Store
	blobs *memory.BlobStore
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	st := memory.NewStore()
	blobs := memory.NewBlobStore()
	if opts.NewKey == nil {
		var n atomic.Int64
		opts.NewKey = func() (string, error) { return fmt.Sprintf("k%d", n.Add(1)), nil }
	}
	return fixture{svc: NewService(st, blobs, opts), store: st, blobs: blobs}
}

func (f fixture) create(t *testing.T, in DocumentInput) common.Document {
	t.Helper()
	doc, err := f.svc.CreateDocument(context.Background(), in)
	require.NoError(t, err)
	return doc
}

func textInput(title string) DocumentInput {
	return DocumentInput{Title: title, DocumentType: "Text", NodeType: "Informative document"}
}

func TestCreateThenGet(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	in := DocumentInput{
		Title:        " Kiruna Masterplan ",
		Description:  "Plan for the relocation of the city centre",
		DocumentType: "Design",
		Scale:        "1:7,500",
		NodeType:     "design document",
		Stakeholders: []string{"Kiruna kommun", " LKAB ", "Kiruna kommun"},
		IssuanceDate: "2012-06",
		Language:     "Swedish",
		Pages:        "1-43",
		Georeference: &common.Georeference{Type: common.GeoPoint, Point: common.Coordinate{Lat: 67.85, Lng: 20.22}},
	}
	created := f.create(t, in)
	assert.NotZero(t, created.ID)

	got, err := f.svc.GetDocument(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "Kiruna Masterplan", got.Title)
	assert.Equal(t, common.RatioScale(7500), got.Scale)
	assert.Equal(t, common.NodeDesign, got.NodeType)
	assert.Equal(t, []string{"Kiruna kommun", "LKAB"}, got.Stakeholders)
	assert.Equal(t, common.MustParsePartialDate("2012-06"), got.IssuanceDate)
}

func TestCreateDocument_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    DocumentInput
		field string
	}{
		{"empty title", DocumentInput{Title: "  ", DocumentType: "Text", NodeType: "Agreement"}, "title"},
		{"missing type", DocumentInput{Title: "A", NodeType: "Agreement"}, "documentType"},
		{"unknown node type", DocumentInput{Title: "A", DocumentType: "Text", NodeType: "Poem"}, "nodeType"},
		{"impossible date", DocumentInput{Title: "A", DocumentType: "Text", NodeType: "Agreement", IssuanceDate: "2022-02-30"}, "issuanceDate"},
		{"point out of range", DocumentInput{
			Title: "A", DocumentType: "Text", NodeType: "Agreement",
			Georeference: &common.Georeference{Type: common.GeoPoint, Point: common.Coordinate{Lat: 120}},
		}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			_, err := f.svc.CreateDocument(context.Background(), tc.in)
			var ve common.ValidationError
			require.ErrorAs(t, err, &ve)
			if tc.field != "" {
				assert.Equal(t, tc.field, ve.Field)
			}

			docs, err := f.svc.ListDocuments(context.Background())
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}

func TestUpdateDocument(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	in := textInput("Report")
	in.Scale = "Text"
	in.Georeference = &common.Georeference{Type: common.GeoArea, Name: "Centre"}
	doc := f.create(t, in)

	title, date, clear := "Report, 2nd edition", "2016", ""
	updated, err := f.svc.UpdateDocument(ctx, doc.ID, DocumentPatch{
		Title:             &title,
		IssuanceDate:      &date,
		Scale:             &clear,
		ClearGeoreference: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Report, 2nd edition", updated.Title)
	assert.Equal(t, 2016, updated.IssuanceDate.Year())
	assert.True(t, updated.Scale.IsZero())
	assert.Nil(t, updated.Georeference)
	assert.Equal(t, "Text", updated.DocumentType, "untouched fields stay")

	got, err := f.svc.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	empty := ""
	_, err = f.svc.UpdateDocument(ctx, doc.ID, DocumentPatch{Title: &empty})
	assert.ErrorIs(t, err, common.ValidationError{})

	_, err = f.svc.UpdateDocument(ctx, 404, DocumentPatch{Title: &title})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLink(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	a := f.create(t, textInput("A"))
	b := f.create(t, textInput("B"))

	created, err := f.svc.Link(ctx, a.ID, b.ID, "Direct consequence")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.Link(ctx, b.ID, a.ID, "direct_consequence")
	require.NoError(t, err)
	assert.False(t, created, "duplicate link is a no-op")

	_, err = f.svc.Link(ctx, a.ID, a.ID, "Update")
	assert.ErrorIs(t, err, common.ErrSelfLink)

	_, err = f.svc.Link(ctx, a.ID, 99, "Update")
	assert.ErrorIs(t, err, common.ErrInvalidReference)

	_, err = f.svc.Link(ctx, a.ID, b.ID, "Inspiration")
	assert.ErrorIs(t, err, common.ValidationError{})

	rels, err := f.svc.ListRelations(ctx)
	require.NoError(t, err)
	assert.Len(t, rels, 1)
}

func TestUnlinkIsOrderSymmetric(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	a := f.create(t, textInput("A"))
	b := f.create(t, textInput("B"))

	_, err := f.svc.Link(ctx, a.ID, b.ID, "Prevision")
	require.NoError(t, err)
	require.NoError(t, f.svc.Unlink(ctx, b.ID, a.ID, "Prevision"))

	conns, err := f.svc.ListConnections(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, conns)

	assert.ErrorIs(t, f.svc.Unlink(ctx, a.ID, b.ID, "Prevision"), common.ErrNotFound)
}

func TestListConnections(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	a := f.create(t, textInput("A"))
	b := f.create(t, textInput("B"))

	_, err := f.svc.Link(ctx, b.ID, a.ID, "Update")
	require.NoError(t, err)

	conns, err := f.svc.ListConnections(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, b.ID, conns[0].OtherID)
	assert.Equal(t, "B", conns[0].OtherTitle)
	assert.Equal(t, common.Update, conns[0].Type)
}

func TestSearchDocuments(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	f.create(t, textInput("Report"))
	f.create(t, DocumentInput{Title: "Agreement", DocumentType: "Agreement", NodeType: "Agreement"})
	f.create(t, DocumentInput{Title: "Lowercase", DocumentType: "text", NodeType: "Agreement"})

	all, err := f.svc.SearchDocuments(ctx, filter.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	text := "Text"
	only, err := f.svc.SearchDocuments(ctx, filter.Filter{DocumentType: &text})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Report", only[0].Title)

	none := "Nothing"
	empty, err := f.svc.SearchDocuments(ctx, filter.Filter{Title: &none})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestListAreas(t *testing.T) {
	f := newFixture(t, Options{})
	in := textInput("A")
	in.Georeference = &common.Georeference{Type: common.GeoArea, Name: "Whole municipality"}
	f.create(t, in)
	f.create(t, textInput("B"))

	areas, err := f.svc.ListAreas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "Whole municipality", areas[0].Name)
}

func TestUpload(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	doc := f.create(t, textInput("A"))

	stored, err := f.svc.Upload(ctx, doc.ID, common.KindOriginal, []common.ResourceFile{
		{Name: "plan.PDF", Data: []byte("%PDF-1.7")},
		{Name: "notes", Data: []byte("plain text notes")},
		{Name: "photo.jpg", MimeType: "image/jpeg", Data: []byte{0xff, 0xd8}},
	})
	require.NoError(t, err)
	require.Len(t, stored, 3)

	assert.Equal(t, "application/pdf", stored[0].MimeType)
	assert.Equal(t, fmt.Sprintf("documents/%d/original/k1.pdf", doc.ID), stored[0].FileKey)
	assert.Equal(t, "text/plain; charset=utf-8", stored[1].MimeType)
	assert.Equal(t, "image/jpeg", stored[2].MimeType)
	assert.Equal(t, int64(8), stored[0].Size)
	assert.Len(t, f.blobs.Keys(), 3)

	res, data, err := f.svc.GetResource(ctx, stored[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "plan.PDF", res.FileName)
	assert.Equal(t, []byte("%PDF-1.7"), data)

	kind := common.KindAttachment
	attachments, err := f.svc.ListResources(ctx, doc.ID, &kind)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestUpload_EmptyBatchLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	doc := f.create(t, textInput("A"))
	_, err := f.svc.Upload(ctx, doc.ID, common.KindAttachment, []common.ResourceFile{{Name: "a.png", Data: []byte("x")}})
	require.NoError(t, err)

	before, err := f.svc.ListResources(ctx, doc.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.Upload(ctx, doc.ID, common.KindAttachment, nil)
	assert.ErrorIs(t, err, common.ErrNoFilesProvided)
	_, err = f.svc.Upload(ctx, 404, common.KindOriginal, nil)
	assert.ErrorIs(t, err, common.ErrNoFilesProvided, "empty batch is reported before the document check")

	after, err := f.svc.ListResources(ctx, doc.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, f.blobs.Keys(), 1)
}

func TestUpload_UnknownDocument(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.svc.Upload(context.Background(), 404, common.KindOriginal, []common.ResourceFile{{Name: "a.pdf"}})
	assert.ErrorIs(t, err, common.ErrInvalidReference)
	assert.Empty(t, f.blobs.Keys())
}

// failingBlobs rejects writes for one key and stores the rest.
type failingBlobs struct {
	*memory.BlobStore
	failOn string
}

func (b *failingBlobs) Put(ctx context.Context, key, contentType string, data []byte) error {
	if key == b.failOn {
		return errors.New("bucket unavailable")
	}
	return b.BlobStore.Put(ctx, key, contentType, data)
}

func TestUpload_IsAtomic(t *testing.T) {
	st := memory.NewStore()
	blobs := &failingBlobs{BlobStore: memory.NewBlobStore()}
	var n atomic.Int64
	svc := NewService(st, blobs, Options{
		UploadParallelism: 1,
		NewKey:            func() (string, error) { return fmt.Sprintf("k%d", n.Add(1)), nil },
	})
	ctx := context.Background()
	doc, err := svc.CreateDocument(ctx, textInput("A"))
	require.NoError(t, err)
	blobs.failOn = fmt.Sprintf("documents/%d/original/k3.pdf", doc.ID)

	_, err = svc.Upload(ctx, doc.ID, common.KindOriginal, []common.ResourceFile{
		{Name: "1.pdf"}, {Name: "2.pdf"}, {Name: "3.pdf"},
	})
	var ie common.InternalError
	require.ErrorAs(t, err, &ie)

	res, err := svc.ListResources(ctx, doc.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Empty(t, blobs.Keys(), "written blobs are removed")
}

type recordingNotifier struct {
	id   int64
	keys []string
	err  error
}

func (r *recordingNotifier) DocumentDeleted(_ context.Context, id int64, keys []string) error {
	r.id, r.keys = id, keys
	return r.err
}

func TestDeleteDocument_Cascades(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	a := f.create(t, textInput("A"))
	b := f.create(t, textInput("B"))
	_, err := f.svc.Link(ctx, a.ID, b.ID, "Update")
	require.NoError(t, err)
	_, err = f.svc.Upload(ctx, a.ID, common.KindOriginal, []common.ResourceFile{{Name: "a.pdf", Data: []byte("a")}})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteDocument(ctx, a.ID))

	res, err := f.svc.ListResources(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, res)

	conns, err := f.svc.ListConnections(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, conns, "relations of a deleted document are removed")
	assert.Empty(t, f.blobs.Keys(), "blobs are deleted in place without a notifier")

	assert.ErrorIs(t, f.svc.DeleteDocument(ctx, a.ID), common.ErrNotFound)
}

func TestDeleteDocument_Notifier(t *testing.T) {
	ctx := context.Background()

	t.Run("hands keys to the notifier", func(t *testing.T) {
		n := &recordingNotifier{}
		f := newFixture(t, Options{Cleanup: n})
		doc := f.create(t, textInput("A"))
		stored, err := f.svc.Upload(ctx, doc.ID, common.KindOriginal, []common.ResourceFile{{Name: "a.pdf"}})
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteDocument(ctx, doc.ID))
		assert.Equal(t, doc.ID, n.id)
		assert.Equal(t, []string{stored[0].FileKey}, n.keys)
		assert.Len(t, f.blobs.Keys(), 1, "blob removal is left to the consumer")
	})

	t.Run("falls back when the notifier fails", func(t *testing.T) {
		n := &recordingNotifier{err: errors.New("broker down")}
		f := newFixture(t, Options{Cleanup: n})
		doc := f.create(t, textInput("A"))
		_, err := f.svc.Upload(ctx, doc.ID, common.KindOriginal, []common.ResourceFile{{Name: "a.pdf"}})
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteDocument(ctx, doc.ID))
		assert.Empty(t, f.blobs.Keys())
	})
}

func TestDiagram(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	a := f.create(t, DocumentInput{Title: "A", DocumentType: "Technical", NodeType: "Technical document", Scale: "50000", IssuanceDate: "2022"})
	b := f.create(t, DocumentInput{Title: "B", DocumentType: "Text", NodeType: "Informative document", Scale: "Text", IssuanceDate: "2022-06"})
	c := f.create(t, DocumentInput{Title: "C", DocumentType: "Concept", NodeType: "Design document"})

	_, err := f.svc.Link(ctx, a.ID, b.ID, "Update")
	require.NoError(t, err)
	_, err = f.svc.Link(ctx, b.ID, a.ID, "Prevision")
	require.NoError(t, err)
	_, err = f.svc.Link(ctx, b.ID, c.ID, "Collateral consequence")
	require.NoError(t, err)

	d, err := f.svc.Diagram(ctx)
	require.NoError(t, err)
	require.Len(t, d.Nodes, 3)
	require.Len(t, d.Edges, 2)

	pos := map[int64]layout.Position{}
	for _, n := range d.Nodes {
		pos[n.ID] = n.Position
	}
	assert.Equal(t, float64(layout.YTierB), pos[a.ID].Y)
	assert.Equal(t, float64(layout.YText), pos[b.ID].Y)
	assert.Equal(t, float64(layout.YConcept), pos[c.ID].Y, "absent scale falls back to the document type")
	assert.Greater(t, pos[b.ID].X, pos[a.ID].X)
	assert.Equal(t, float64(200), pos[c.ID].X, "undated documents sit on the undated column")

	ambiguous := d.Edges[0]
	assert.True(t, ambiguous.Ambiguous)
	assert.Equal(t, []common.RelationType{common.Update, common.Prevision}, ambiguous.Labels)
	assert.False(t, d.Edges[1].Ambiguous)

	assert.NotEmpty(t, d.Axis)
}

func TestDiagram_Empty(t *testing.T) {
	f := newFixture(t, Options{})
	d, err := f.svc.Diagram(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.Nodes)
	assert.NotNil(t, d.Edges)
}

func TestInspectEdge(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	a := f.create(t, DocumentInput{Title: "A", DocumentType: "Text", NodeType: "Informative document"})
	b := f.create(t, DocumentInput{Title: "B", DocumentType: "Text", NodeType: "Informative document"})
	c := f.create(t, DocumentInput{Title: "C", DocumentType: "Text", NodeType: "Informative document"})

	_, err := f.svc.Link(ctx, a.ID, b.ID, "Direct consequence")
	require.NoError(t, err)
	_, err = f.svc.Link(ctx, b.ID, a.ID, "Update")
	require.NoError(t, err)

	labels, err := f.svc.InspectEdge(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []common.RelationType{common.DirectConsequence, common.Update}, labels)

	_, err = f.svc.InspectEdge(ctx, a.ID, c.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.svc.InspectEdge(ctx, a.ID, 404)
	assert.ErrorIs(t, err, common.ErrInvalidReference)
}
