package routes

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kiruna-explorer/backend/internal/server/middleware"
	"github.com/kiruna-explorer/backend/pkg/common"
)

func UploadResourcesHandler(c echo.Context) error {
	return upload(c, common.KindOriginal, "All resources uploaded successfully")
}

func UploadAttachmentsHandler(c echo.Context) error {
	return upload(c, common.KindAttachment, "All attachments uploaded successfully")
}

// upload reads the multipart "files" field and stores the batch.
func upload(c echo.Context, kind common.ResourceKind, message string) error {
	type uploadResponse struct {
		Message   string            `json:"message"`
		Resources []common.Resource `json:"resources"`
	}

	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var files []common.ResourceFile
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["files"] {
			src, err := fh.Open()
			if err != nil {
				return invalidBody(c, err)
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				return invalidBody(c, err)
			}
			files = append(files, common.ResourceFile{
				Name:     fh.Filename,
				MimeType: fh.Header.Get("Content-Type"),
				Data:     data,
			})
		}
	}

	stored, err := middleware.GetApp(c).Catalog.Upload(c.Request().Context(), id, kind, files)
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusCreated, uploadResponse{Message: message, Resources: stored})
}

// GetResourcesHandler lists resource descriptors, optionally by ?kind=.
func GetResourcesHandler(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var kind *common.ResourceKind
	if raw := c.QueryParam("kind"); raw != "" {
		k, err := common.ParseResourceKind(raw)
		if err != nil {
			return writeError(c, err, inPath)
		}
		kind = &k
	}

	res, err := middleware.GetApp(c).Catalog.ListResources(c.Request().Context(), id, kind)
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, res)
}

// GetResourceHandler streams the payload of a resource.
func GetResourceHandler(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}

	res, data, err := middleware.GetApp(c).Catalog.GetResource(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, inPath)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	c.Response().Header().Set(echo.HeaderContentLength, fmt.Sprint(len(data)))
	return c.Blob(http.StatusOK, res.MimeType, data)
}
