package api

import (
    sentrygin "github.com/getsentry/sentry-go/gin"
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/config"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/api/handler"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/api/middleware"
)

const serviceName = "aristaya-backend"

// NewRouter 组装 gin 引擎与支付路由。
// webhook 路由不经过任何会消费 body 的中间件，验签必须拿到原始字节。
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
    if cfg.Server.Mode != "" {
        gin.SetMode(cfg.Server.Mode)
    }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(otelgin.Middleware(serviceName))
    if cfg.Sentry.DSN != "" {
        r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
    }

    payment := r.Group("/api/payment")
    {
        payment.POST("/checkout", middleware.RateLimit(5, 10), h.Checkout)
        payment.POST("/webhook", h.Webhook)
        payment.POST("/paymentverification", h.Callback)
        payment.GET("/getkey", h.GetKey)
        payment.GET("/getpaymentdetails/:paymentId", h.PaymentDetails)
        payment.GET("/getPreviousOrders", middleware.Auth(cfg.JWT.Secret), h.PreviousOrders)
    }

    return r
}
