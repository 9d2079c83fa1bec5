package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/reachloop/reachloop/internal/identity"
)

const (
	HeaderOrg        = "X-Org-ID"
	contextUserIDKey = "user_id"
)

// AuthRequired resolves the bearer credential to a principal and stores the
// user id on the context. Requests without a valid credential never reach a
// handler.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, identity.ErrMissingToken)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			AbortWithError(c, identity.ErrInvalidToken)
			return
		}

		principal, err := s.verifier.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, principal.UserID)
		c.Next()
	}
}

func userIDFromContext(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(snowflake.ID)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

func orgIDFromRequest(c *gin.Context) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.GetHeader(HeaderOrg))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("org_id"))
	}
	if raw == "" {
		return 0, false
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
