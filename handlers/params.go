package handlers

import (
	"net/http"
	"strconv"

	"storefront-service/apperrors"

	"github.com/gin-gonic/gin"
)

// pathID parses an integer path parameter.
func pathID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apperrors.InvalidArgument("Invalid " + name)
	}
	return id, nil
}

// bindJSON decodes the request body into out.
func bindJSON(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return apperrors.New(http.StatusBadRequest, "Invalid request body", err)
	}
	return nil
}
