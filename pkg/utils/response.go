package utils

import (
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type APIResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorBody  `json:"error,omitempty"`
}

func DataResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, APIResponse{
		Data: data,
	})
}

func ErrorResponse(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, APIResponse{
		Error: &ErrorBody{
			Code:    errCode,
			Message: message,
		},
	})
}
