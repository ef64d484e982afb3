package api

import (
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	errorInternalServer    = errorResponse{1000, "internal server error"}
	errorInvalidParameters = errorResponse{1001, "invalid parameters"}
	errorUnknownLocation   = errorResponse{1010, "unknown location"}
	errorUnknownRating     = errorResponse{1011, "unknown rating"}
)

func abortWithEncoding(c *gin.Context, code int, resp errorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": resp})
}
