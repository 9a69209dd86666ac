package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/storefront/internal/server/auth"
	"github.com/avolkov/storefront/internal/server/metrics"
)

// ContextUserKey carries the authenticated user id between the gate and
// page handlers.
const ContextUserKey = "auth.user_id"

// gateMiddleware extracts the session cookie, asks the Gatekeeper for a
// verdict, and either redirects or lets the request through with the user
// id attached.
func (s *Server) gateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil {
			token = ""
		}

		decision := s.gate.Decide(c.Request.URL.Path, token)
		metrics.GateDecisions.WithLabelValues(decision.Action.String()).Inc()

		if decision.UserID != "" {
			c.Set(ContextUserKey, decision.UserID)
		}

		if decision.Action == auth.Redirect {
			c.Redirect(http.StatusTemporaryRedirect, decision.Target)
			c.Abort()
			return
		}

		c.Next()
	}
}
