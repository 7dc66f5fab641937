package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error kinds. Compare with errors.Is; build instances with the helpers below.
var (
	ErrInvalidArgument  = New(http.StatusBadRequest, "Invalid argument", nil)
	ErrNotFound         = New(http.StatusNotFound, "Not found", nil)
	ErrTransportFailure = New(http.StatusBadGateway, "Remote store request failed", nil)
	ErrInternalServer   = New(http.StatusInternalServerError, "Internal server error", nil)
)

// InvalidArgument reports caller input rejected before delegation.
func InvalidArgument(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NotFound reports that the requested entity does not exist.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// TransportFailure reports a remote call that did not succeed.
func TransportFailure(message string, err error) *Error {
	return New(http.StatusBadGateway, message, err)
}

// From converts any error into an *Error, defaulting to a 500.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(http.StatusInternalServerError, ErrInternalServer.Message, err)
}

// HandleError writes err as a JSON body with its status code.
func HandleError(w http.ResponseWriter, err error) {
	appErr := From(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			appErr := From(c.Errors.Last().Err)
			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
