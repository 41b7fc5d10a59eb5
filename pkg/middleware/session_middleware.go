package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moments/pkg/utils"
)

const sessionKey = "session"

// SessionMiddleware attaches the caller's session when a valid bearer token is
// present. With required=true a missing or bad token stops the request.
func SessionMiddleware(issuer *utils.TokenIssuer, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if required {
				utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		session, err := issuer.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if required {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireSession rejects requests that reached it without a session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromContext(c); !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) (*utils.Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*utils.Session)
	return session, ok && session != nil
}
