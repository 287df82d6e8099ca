package middleware

import (
	"net/http"

	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
)

// Session loads the request's session into the context, creating a fresh
// unauthenticated one when the cookie is missing or invalid. Every handler
// downstream can rely on session.Current returning non-nil.
func Session(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := store.Load(c)
		if sess == nil {
			created, err := store.Create(c)
			if err != nil {
				c.String(http.StatusInternalServerError, "session unavailable")
				c.Abort()
				return
			}
			sess = created
		}
		c.Set(session.ContextKey, sess)
		c.Next()
	}
}

// RequireAuth short-circuits unauthenticated requests with a flash message
// and a redirect to the login page.
func RequireAuth(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Current(c)
		if sess == nil || !sess.Authenticated {
			if sess != nil {
				_ = store.AddFlash(sess, "danger", "Effettua il login per accedere")
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
