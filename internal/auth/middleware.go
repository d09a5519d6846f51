package auth

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/drew2323/v3trading/internal/models"
)

const userKey = "auth.user"

// Required aborts with 401 unless the session cookie resolves to a user.
func Required(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CookieName)
		u, err := s.Authenticate(token)
		if err != nil {
			msg := "Not authenticated"
			if errors.Is(err, ErrInvalidToken) {
				msg = "Invalid token"
			} else if errors.Is(err, ErrUnknownUser) {
				msg = "User not found"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "unauthenticated", "message": msg})
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
