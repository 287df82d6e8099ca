package handler

import (
	"net/http"
	"strconv"

	"github.com/peg96/FinanceBinder/internal/apperr"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
)

// flashRedirect queues a one-shot message on the current session and sends
// the browser to location.
func flashRedirect(c *gin.Context, store *session.Store, category, message, location string) {
	if sess := session.Current(c); sess != nil {
		_ = store.AddFlash(sess, category, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// respondError converts a domain error into the form-endpoint contract:
// taxonomy errors become a flash plus a redirect, anything else (store
// unavailability) surfaces as a 5xx.
func respondError(c *gin.Context, store *session.Store, err error, location string) {
	switch {
	case apperr.IsValidation(err), apperr.IsConflict(err), apperr.IsNotFound(err), apperr.IsAuth(err):
		flashRedirect(c, store, "danger", err.Error(), location)
	default:
		c.String(http.StatusInternalServerError, "Errore interno del server")
	}
}

// paramID parses the :id path segment.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
