package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kiruna-explorer/backend/pkg/catalog"
)

type App struct {
	Catalog *catalog.Service
	// BlobBackend names the blob storage in use, reported by /health.
	BlobBackend string
	// StoreBackend names the catalog storage in use, reported by /health.
	StoreBackend string
}

type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context so handlers can reach the
// application services.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}

// GetApp returns the App of a request handled behind AppContextMiddleware.
func GetApp(c echo.Context) *App {
	return c.(*AppContext).App
}
