package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	RespondWithErrorKind(c, statusCode, HTTPStatusText(statusCode), customMessage)
}

// RespondWithErrorKind writes an error body whose "error" field is a stable,
// machine-readable kind such as "AlreadyReviewed".
func RespondWithErrorKind(c *gin.Context, statusCode int, kind, customMessage string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   kind,
		Message: customMessage,
	})
}
