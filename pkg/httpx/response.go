package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一HTTP响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteSuccess 写成功响应
func WriteSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError 写错误响应
func WriteError(c *gin.Context, status int, err error) {
	c.JSON(status, Response{
		Success: false,
		Message: err.Error(),
	})
}

// WriteBadRequest 写参数错误响应
func WriteBadRequest(c *gin.Context, err error) {
	WriteError(c, http.StatusBadRequest, err)
}
