package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every API endpoint returns. Code is 0 on
// success and echoes the HTTP status on errors.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends data with code 0
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// AbortUnauthorized sends a 401 response and stops the handler chain
func AbortUnauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
	c.Abort()
}

// AbortTooManyRequests sends a 429 response and stops the handler chain
func AbortTooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
	c.Abort()
}
