package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kiruna-explorer/backend/internal/server/middleware"
	"github.com/kiruna-explorer/backend/pkg/catalog"
	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/filter"
)

type createDocumentBody struct {
	Title        string               `json:"title" validate:"required"`
	Description  string               `json:"description"`
	DocumentType string               `json:"documentType" validate:"required"`
	Scale        string               `json:"scale"`
	NodeType     string               `json:"nodeType" validate:"required"`
	Stakeholders []string             `json:"stakeholders"`
	IssuanceDate string               `json:"issuanceDate"`
	Language     string               `json:"language"`
	Pages        string               `json:"pages"`
	Georeference *common.Georeference `json:"georeference"`
}

// CreateDocumentHandler creates a document from a JSON body.
func CreateDocumentHandler(c echo.Context) error {
	type createDocumentResponse struct {
		DocumentID int64  `json:"documentId"`
		Message    string `json:"message"`
		Status     int    `json:"status"`
	}

	data := new(createDocumentBody)
	if err := c.Bind(data); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(data); err != nil {
		return writeError(c, err, inBody)
	}

	svc := middleware.GetApp(c).Catalog
	doc, err := svc.CreateDocument(c.Request().Context(), catalog.DocumentInput(*data))
	if err != nil {
		return writeError(c, err, inBody)
	}

	return c.JSON(http.StatusCreated, createDocumentResponse{
		DocumentID: doc.ID,
		Message:    "Document created successfully",
		Status:     http.StatusCreated,
	})
}

func GetDocumentsHandler(c echo.Context) error {
	docs, err := middleware.GetApp(c).Catalog.ListDocuments(c.Request().Context())
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, docs)
}

// SearchDocumentsHandler filters documents by the predicates in the body.
// Absent keys do not narrow the result.
func SearchDocumentsHandler(c echo.Context) error {
	f := new(filter.Filter)
	if err := c.Bind(f); err != nil {
		return invalidBody(c, err)
	}

	docs, err := middleware.GetApp(c).Catalog.SearchDocuments(c.Request().Context(), *f)
	if err != nil {
		return writeError(c, err, inBody)
	}
	return c.JSON(http.StatusOK, docs)
}

func GetDocumentHandler(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}

	doc, err := middleware.GetApp(c).Catalog.GetDocument(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, doc)
}

// EditDocumentHandler applies a partial update.
func EditDocumentHandler(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}

	patch := new(catalog.DocumentPatch)
	if err := c.Bind(patch); err != nil {
		return invalidBody(c, err)
	}

	doc, err := middleware.GetApp(c).Catalog.UpdateDocument(c.Request().Context(), id, *patch)
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, doc)
}

// DeleteDocumentHandler deletes a document with its relations and resources.
func DeleteDocumentHandler(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := middleware.GetApp(c).Catalog.DeleteDocument(c.Request().Context(), id); err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Document deleted successfully"})
}

func GetAreasHandler(c echo.Context) error {
	areas, err := middleware.GetApp(c).Catalog.ListAreas(c.Request().Context())
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, areas)
}

func GetDiagramHandler(c echo.Context) error {
	d, err := middleware.GetApp(c).Catalog.Diagram(c.Request().Context())
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, d)
}

type edgeResponse struct {
	Source int64                 `json:"source"`
	Target int64                 `json:"target"`
	Labels []common.RelationType `json:"labels"`
}

func GetDiagramEdgeHandler(c echo.Context) error {
	source, ok := pathID(c, "source")
	if !ok {
		return invalidID(c)
	}
	target, ok := pathID(c, "target")
	if !ok {
		return invalidID(c)
	}

	labels, err := middleware.GetApp(c).Catalog.InspectEdge(c.Request().Context(), source, target)
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, edgeResponse{Source: source, Target: target, Labels: labels})
}
