package middleware

import (
	"net/http"
	"strconv"

	"storefront-service/apperrors"
	"storefront-service/identity"

	"github.com/gin-gonic/gin"
)

// Identity headers.
const (
	CartIDHeader = "X-Cart-ID"
	UserIDHeader = "X-User-ID"
)

// Identity resolves the caller's cart and user from the X-Cart-ID and
// X-User-ID headers, falling back to the given defaults. Malformed or
// non-positive values are rejected with 400.
func Identity(defaultCartID, defaultUserID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := headerID(c, CartIDHeader, defaultCartID)
		if !ok {
			return
		}
		userID, ok := headerID(c, UserIDHeader, defaultUserID)
		if !ok {
			return
		}

		caller := identity.Caller{CartID: cartID, UserID: userID}
		c.Set("cartID", cartID)
		c.Set("userID", userID)
		c.Request = c.Request.WithContext(identity.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

func headerID(c *gin.Context, header string, fallback int) (int, bool) {
	raw := c.GetHeader(header)
	if raw == "" {
		return fallback, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		appErr := apperrors.InvalidArgument("Invalid " + header + " header")
		c.AbortWithStatusJSON(http.StatusBadRequest, appErr)
		return 0, false
	}
	return id, true
}
