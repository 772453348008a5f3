package utils

import "github.com/gin-gonic/gin"

// ErrorBody -> envelope error seragam {error:{status,message}}. Field
// status selalu sama dengan HTTP status code responsnya.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{Error: ErrorBody{
		Status:  code,
		Message: err.Error(),
	}})
}

func AbortError(c *gin.Context, code int, err error) {
	RespondError(c, code, err)
	c.Abort()
}
