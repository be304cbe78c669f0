package response

import (
	"github.com/gin-gonic/gin"
)

type ApiEnvelope struct {
	Ok    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Error *ApiError `json:"error,omitempty"`
}

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: &ApiError{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, errorCode string, message string) {
	c.AbortWithStatusJSON(status, ApiEnvelope{
		Ok: false,
		Error: &ApiError{
			Code:    errorCode,
			Message: message,
		},
	})
}
