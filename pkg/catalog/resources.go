package catalog

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/logger"
)

// Upload stores a batch of files for a document. The batch is all or
// nothing: when a blob write or the metadata insert fails, the blobs already
// written are removed and no resource is recorded.
func (s *Service) Upload(ctx context.Context, documentID int64, kind common.ResourceKind, files []common.ResourceFile) ([]common.Resource, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.Upload")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("document_id", documentID),
		attribute.String("kind", string(kind)),
		attribute.Int("files", len(files)),
	)

	if len(files) == 0 {
		return nil, common.ErrNoFilesProvided
	}
	kind, err := common.ParseResourceKind(string(kind))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = baseName(f.Name)
		if names[i] == "" {
			return nil, common.ValidationError{Field: "files", Message: "file name must not be empty"}
		}
	}
	if err := s.ensureDocuments(ctx, documentID); err != nil {
		return nil, fail(span, err)
	}

	resources := make([]common.Resource, len(files))
	for i, f := range files {
		name := names[i]
		ext := strings.ToLower(path.Ext(name))
		id, err := s.opts.NewKey()
		if err != nil {
			return nil, fail(span, common.Internal("generate blob key", err))
		}
		resources[i] = common.Resource{
			DocumentID: documentID,
			Kind:       kind,
			FileName:   name,
			MimeType:   detectMimeType(f, ext),
			Size:       int64(len(f.Data)),
			FileKey:    fmt.Sprintf("documents/%d/%s/%s%s", documentID, kind, id, ext),
		}
	}

	var (
		mu      sync.Mutex
		written []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.UploadParallelism)
	for i := range files {
		r := resources[i]
		data := files[i].Data
		g.Go(func() error {
			if err := s.blobs.Put(gctx, r.FileKey, r.MimeType, data); err != nil {
				return fmt.Errorf("put %s: %w", r.FileName, err)
			}
			mu.Lock()
			written = append(written, r.FileKey)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.discardBlobs(ctx, written)
		return nil, fail(span, common.Internal("upload", err))
	}

	stored, err := s.store.AddResources(ctx, resources)
	if err != nil {
		s.discardBlobs(ctx, written)
		return nil, fail(span, err)
	}
	logger.Info("Resources uploaded", "document_id", documentID, "kind", kind, "count", len(stored))
	return stored, nil
}

// baseName strips any client side directory from a file name. It returns ""
// when nothing usable is left.
func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(clean(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// discardBlobs removes blobs of a failed upload. It runs even when ctx has
// been cancelled.
func (s *Service) discardBlobs(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := s.blobs.Delete(context.WithoutCancel(ctx), keys...); err != nil {
		logger.Error("Failed to remove blobs of failed upload", "keys", keys, "err", err)
	}
}

// detectMimeType prefers the client's content type, then the extension and
// finally the content itself.
func detectMimeType(f common.ResourceFile, ext string) string {
	if t := strings.TrimSpace(f.MimeType); t != "" && t != "application/octet-stream" {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return http.DetectContentType(f.Data)
}

// GetResource returns the metadata of a resource together with its payload.
func (s *Service) GetResource(ctx context.Context, id int64) (common.Resource, []byte, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.GetResource")
	defer span.End()
	span.SetAttributes(attribute.Int64("resource_id", id))

	r, err := s.store.GetResource(ctx, id)
	if err != nil {
		return common.Resource{}, nil, fail(span, err)
	}
	data, err := s.blobs.Get(ctx, r.FileKey)
	if err != nil {
		return common.Resource{}, nil, fail(span, common.Internal("read blob", err))
	}
	return r, data, nil
}

// ListResources lists the resources of a document, optionally restricted to
// one kind.
func (s *Service) ListResources(ctx context.Context, documentID int64, kind *common.ResourceKind) ([]common.Resource, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.ListResources")
	defer span.End()

	res, err := s.store.ListResources(ctx, documentID, kind)
	return res, fail(span, err)
}
