package middleware

import (
    "fmt"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/response"
)

// ContextUserID 认证中间件写入 gin context 的键
const ContextUserID = "userID"

// Auth 校验 Bearer JWT 并注入用户 ID。签发方在外部登录服务，
// 这里只做验签与取 claim。
func Auth(secret string) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        tokenStr := strings.TrimPrefix(header, "Bearer ")
        if tokenStr == "" || tokenStr == header {
            response.Unauthorized(c, "missing bearer token")
            c.Abort()
            return
        }

        token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
            if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
            }
            return []byte(secret), nil
        })
        if err != nil || !token.Valid {
            response.Unauthorized(c, "invalid token")
            c.Abort()
            return
        }

        claims, ok := token.Claims.(jwt.MapClaims)
        if !ok {
            response.Unauthorized(c, "invalid token claims")
            c.Abort()
            return
        }
        id, _ := claims["id"].(string)
        if id == "" {
            response.Unauthorized(c, "token without user id")
            c.Abort()
            return
        }

        c.Set(ContextUserID, id)
        c.Next()
    }
}
