package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mid "github.com/kiruna-explorer/backend/internal/server/middleware"
	"github.com/kiruna-explorer/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		app := mid.GetApp(c)
		return c.JSON(http.StatusOK, map[string]string{
			"status": "OK",
			"store":  app.StoreBackend,
			"blobs":  app.BlobBackend,
		})
	})

	api := e.Group("/api")

	// Document routes
	api.GET("/documents", routes.GetDocumentsHandler)
	api.POST("/documents", routes.CreateDocumentHandler)
	api.POST("/documents/search", routes.SearchDocumentsHandler)
	api.GET("/documents/:id", routes.GetDocumentHandler)
	api.PATCH("/documents/:id", routes.EditDocumentHandler)
	api.DELETE("/documents/:id", routes.DeleteDocumentHandler)

	// Connection routes
	api.GET("/connections", routes.GetConnectionsHandler)
	api.POST("/connections", routes.CreateConnectionHandler)
	api.DELETE("/connections", routes.DeleteConnectionHandler)
	api.GET("/documents/:id/connections", routes.GetDocumentConnectionsHandler)

	// Resource routes
	api.GET("/documents/:id/resources", routes.GetResourcesHandler)
	api.POST("/documents/:id/resources", routes.UploadResourcesHandler)
	api.POST("/documents/:id/attachments", routes.UploadAttachmentsHandler)
	api.GET("/resources/:id", routes.GetResourceHandler)

	// Diagram and map support
	api.GET("/diagram", routes.GetDiagramHandler)
	api.GET("/diagram/edges/:source/:target", routes.GetDiagramEdgeHandler)
	api.GET("/areas", routes.GetAreasHandler)
}
