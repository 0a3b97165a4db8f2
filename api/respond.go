package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HasanApplore/IndoSup-sub000/storage"
)

// errorBody is the only error shape the API returns.
type errorBody struct {
	Message string `json:"message"`
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorBody{Message: msg})
}

// invalid answers 400 without naming the failing field.
func invalid(c *gin.Context, entity string) {
	abort(c, http.StatusBadRequest, "Invalid "+entity+" data")
}

func notFound(c *gin.Context, entity string) {
	abort(c, http.StatusNotFound, capitalize(entity)+" not found")
}

// fail maps a storage error to its response: 404 for a missing record, 409
// for a unique-key clash, 500 for anything else.
func (h *Handler) fail(c *gin.Context, err error, entity string) {
	switch {
	case storage.IsNotFound(err):
		notFound(c, entity)
	case storage.IsDuplicate(err):
		abort(c, http.StatusConflict, capitalize(entity)+" already exists")
	default:
		h.serverError(c, err)
	}
}

// serverError logs err and answers a generic 500.
func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	abort(c, http.StatusInternalServerError, "Server error")
}

// parseID reads the :id path parameter, answering 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
