package response

import (
    "net/http"

    "github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
    Success bool        `json:"success"`
    Message string      `json:"message,omitempty"`
    Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
    c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessRaw 直接返回业务自定义的顶层字段（兼容旧前端契约）
func SuccessRaw(c *gin.Context, obj interface{}) {
    c.JSON(http.StatusOK, obj)
}

func BadRequest(c *gin.Context, msg string) {
    c.JSON(http.StatusBadRequest, Response{Success: false, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
    c.JSON(http.StatusNotFound, Response{Success: false, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
    c.JSON(http.StatusUnauthorized, Response{Success: false, Message: msg})
}

func InternalError(c *gin.Context, err error) {
    c.JSON(http.StatusInternalServerError, Response{Success: false, Message: err.Error()})
}
