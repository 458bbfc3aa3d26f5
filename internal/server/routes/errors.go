package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kiruna-explorer/backend/pkg/common"
	"github.com/kiruna-explorer/backend/pkg/logger"
)

type messageResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// referenceSource tells writeError whether an unknown document was named in
// the path (404) or in the request body (400).
type referenceSource int

const (
	inPath referenceSource = iota
	inBody
)

// writeError maps a catalog error onto a status code. Internal errors are
// logged and answered with a generic message.
func writeError(c echo.Context, err error, src referenceSource) error {
	var ve common.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error(), Field: ve.Field})
	case errors.Is(err, common.ErrSelfLink), errors.Is(err, common.ErrNoFilesProvided):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, common.ErrDuplicateRelation):
		return c.JSON(http.StatusConflict, messageResponse{Message: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: err.Error()})
	case errors.Is(err, common.ErrInvalidReference):
		if src == inBody {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Document not found"})
	}

	logger.Error("Request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
}

// invalidBody answers a request whose body could not be read. A field error
// raised while decoding is reported with its field.
func invalidBody(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		var ve common.ValidationError
		if errors.As(he.Internal, &ve) {
			return writeError(c, ve, inBody)
		}
	}
	return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid id", Field: "id"})
}
