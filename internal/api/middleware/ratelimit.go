package middleware

import (
    "net/http"
    "sync"

    "github.com/gin-gonic/gin"
    "golang.org/x/time/rate"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/response"
)

// RateLimit 按客户端 IP 的令牌桶限流，挂在 checkout 这类花钱的路由上
func RateLimit(rps float64, burst int) gin.HandlerFunc {
    var (
        mu       sync.Mutex
        limiters = make(map[string]*rate.Limiter)
    )
    get := func(ip string) *rate.Limiter {
        mu.Lock()
        defer mu.Unlock()
        l, ok := limiters[ip]
        if !ok {
            l = rate.NewLimiter(rate.Limit(rps), burst)
            limiters[ip] = l
        }
        return l
    }
    return func(c *gin.Context) {
        if !get(c.ClientIP()).Allow() {
            c.JSON(http.StatusTooManyRequests, response.Response{Success: false, Message: "too many requests"})
            c.Abort()
            return
        }
        c.Next()
    }
}
