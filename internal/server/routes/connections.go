package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kiruna-explorer/backend/internal/server/middleware"
)

type connectionBody struct {
	DocumentID1 int64  `json:"documentId1" validate:"required,gt=0"`
	DocumentID2 int64  `json:"documentId2" validate:"required,gt=0"`
	LinkType    string `json:"linkType" validate:"required"`
}

// CreateConnectionHandler links two documents. An existing link answers 200
// instead of 201.
func CreateConnectionHandler(c echo.Context) error {
	data := new(connectionBody)
	if err := c.Bind(data); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(data); err != nil {
		return writeError(c, err, inBody)
	}

	created, err := middleware.GetApp(c).Catalog.Link(c.Request().Context(), data.DocumentID1, data.DocumentID2, data.LinkType)
	if err != nil {
		return writeError(c, err, inBody)
	}
	if !created {
		return c.JSON(http.StatusOK, messageResponse{Message: "Connection already exists"})
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Connection created successfully"})
}

func DeleteConnectionHandler(c echo.Context) error {
	data := new(connectionBody)
	if err := c.Bind(data); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(data); err != nil {
		return writeError(c, err, inBody)
	}

	err := middleware.GetApp(c).Catalog.Unlink(c.Request().Context(), data.DocumentID1, data.DocumentID2, data.LinkType)
	if err != nil {
		return writeError(c, err, inBody)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Connection deleted successfully"})
}

func GetConnectionsHandler(c echo.Context) error {
	rels, err := middleware.GetApp(c).Catalog.ListRelations(c.Request().Context())
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, rels)
}

// GetDocumentConnectionsHandler lists the documents linked to :id.
func GetDocumentConnectionsHandler(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}

	conns, err := middleware.GetApp(c).Catalog.ListConnections(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, inPath)
	}
	return c.JSON(http.StatusOK, conns)
}
