package public

import (
	"strings"

	"github.com/aurelia-jewelry/aurelia/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getUserID reads the optional authenticated identity. 0 means guest.
func getUserID(c *gin.Context) uint {
	value, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

// cartSessionID resolves the cart session from the header, then the cookie,
// minting a fresh uuid when neither is present. The id is echoed back in
// both places so the storefront can keep using it.
func cartSessionID(c *gin.Context) string {
	sessionID := strings.TrimSpace(c.GetHeader(constants.CartSessionHeader))
	if sessionID == "" {
		if cookie, err := c.Cookie(constants.CartSessionCookie); err == nil {
			sessionID = strings.TrimSpace(cookie)
		}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header(constants.CartSessionHeader, sessionID)
	c.SetCookie(constants.CartSessionCookie, sessionID, 30*24*3600, "/", "", false, true)
	return sessionID
}
