package handler

import (
    "errors"
    "fmt"
    "math"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/go-playground/validator/v10"
    "go.uber.org/zap"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/api/middleware"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/gateway"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/service"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/logger"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/response"
)

// SignatureHeader 网关签名头
const SignatureHeader = "X-Razorpay-Signature"

// Handler 支付相关路由的处理器集合
type Handler struct {
    checkout   service.CheckoutService
    settlement service.SettlementService
    details    service.DetailsService

    keyID          string
    keySecret      string
    webhookSecret  string
    successURL     string
    failURL        string
    currency       string
}

type Options struct {
    KeyID         string
    KeySecret     string
    WebhookSecret string
    SuccessURL    string
    FailURL       string
    Currency      string
}

func New(checkout service.CheckoutService, settlement service.SettlementService, details service.DetailsService, opts Options) *Handler {
    if opts.Currency == "" {
        opts.Currency = "INR"
    }
    return &Handler{
        checkout:      checkout,
        settlement:    settlement,
        details:       details,
        keyID:         opts.KeyID,
        keySecret:     opts.KeySecret,
        webhookSecret: opts.WebhookSecret,
        successURL:    opts.SuccessURL,
        failURL:       opts.FailURL,
        currency:      opts.Currency,
    }
}

type checkoutRequest struct {
    BuyerID      string                 `json:"buyerId" binding:"required"`
    LineItems    []service.CheckoutItem `json:"lineItems" binding:"required,dive"`
    BuyerDetails model.BuyerSnapshot    `json:"buyerDetails" binding:"required"`
}

// Checkout 下单并在网关创建订单
// @Summary 结算下单
// @Tags 支付
// @Accept json
// @Produce json
// @Param request body checkoutRequest true "结算信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/payment/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
    var req checkoutRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, bindErrMessage(err))
        return
    }

    order, err := h.checkout.Checkout(c.Request.Context(), service.CheckoutInput{
        BuyerID: req.BuyerID,
        Items:   req.LineItems,
        Buyer:   req.BuyerDetails,
    })
    if err != nil {
        switch {
        case errors.Is(err, service.ErrEmptyCart),
            errors.Is(err, service.ErrBadQuantity),
            errors.Is(err, service.ErrUnknownProduct),
            errors.Is(err, service.ErrMissingEmail):
            response.BadRequest(c, err.Error())
        default:
            logger.Error("checkout failed", zap.Error(err))
            response.InternalError(c, errors.New("internal server error during checkout"))
        }
        return
    }

    response.SuccessRaw(c, gin.H{
        "success": true,
        "order": gin.H{
            "gatewayOrderId": order.GatewayOrderID,
            "amount":         int64(math.Round(order.TotalAmount * 100)),
            "currency":       h.currency,
        },
    })
}

// Webhook 网关异步通知。必须先取原始字节做验签，之后才允许解析 JSON。
// @Summary 支付 webhook
// @Tags 支付
// @Accept json
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 400 {object} response.Response
// @Router /api/payment/webhook [post]
func (h *Handler) Webhook(c *gin.Context) {
    raw, err := c.GetRawData()
    if err != nil {
        response.BadRequest(c, "unable to read request body")
        return
    }

    sig := c.GetHeader(SignatureHeader)
    if !gateway.VerifyWebhookSignature(raw, sig, h.webhookSecret) {
        // 安全相关事件：签名缺失/不匹配都按不可信拒绝
        logger.Warn("webhook signature rejected",
            zap.String("remote", c.ClientIP()),
            zap.Bool("header_present", sig != ""))
        response.BadRequest(c, "invalid webhook signature")
        return
    }

    ev, err := gateway.ParseEvent(raw)
    if err != nil {
        response.BadRequest(c, "malformed webhook payload")
        return
    }

    if err := h.settlement.HandleEvent(c.Request.Context(), ev); err != nil {
        // 5xx 让网关按自身策略重投；状态机幂等，重投是安全的
        logger.Error("webhook processing failed", zap.Error(err))
        response.InternalError(c, errors.New("webhook processing failed"))
        return
    }
    c.String(http.StatusOK, "ok")
}

type callbackRequest struct {
    GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
    GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
    GatewaySignature string `json:"razorpay_signature" binding:"required"`
}

// Callback 浏览器回跳的同步验证路径，与 webhook 收敛到同一状态机
// @Summary 支付回跳验证
// @Tags 支付
// @Accept json
// @Success 302 {string} string "redirect"
// @Failure 400 {object} response.Response
// @Router /api/payment/paymentverification [post]
func (h *Handler) Callback(c *gin.Context) {
    var req callbackRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, bindErrMessage(err))
        return
    }

    ctx := c.Request.Context()
    if !gateway.VerifyCallbackSignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, h.keySecret) {
        logger.Warn("callback signature mismatch", zap.String("gateway_order_id", req.GatewayOrderID))
        if err := h.settlement.Fail(ctx, req.GatewayOrderID, req.GatewayPaymentID, "signature mismatch"); err != nil {
            logger.Error("callback failure transition failed", zap.Error(err))
        }
        if h.failURL != "" {
            c.Redirect(http.StatusFound, h.failURL)
            return
        }
        response.BadRequest(c, "payment verification failed")
        return
    }

    if err := h.settlement.Complete(ctx, req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature); err != nil {
        logger.Error("callback settlement failed", zap.Error(err))
        response.InternalError(c, errors.New("internal server error during payment verification"))
        return
    }
    c.Redirect(http.StatusFound, fmt.Sprintf("%s?paymentId=%s", h.successURL, req.GatewayPaymentID))
}

// PaymentDetails 按网关支付号返回买家侧详情
// @Summary 支付详情
// @Tags 支付
// @Param paymentId path string true "网关支付号"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /api/payment/getpaymentdetails/{paymentId} [get]
func (h *Handler) PaymentDetails(c *gin.Context) {
    paymentID := c.Param("paymentId")
    details, err := h.details.GetByPaymentID(c.Request.Context(), paymentID)
    if err != nil {
        if errors.Is(err, service.ErrOrderNotFound) {
            response.NotFound(c, "Payment details not found.")
            return
        }
        logger.Error("payment details lookup failed", zap.Error(err))
        response.InternalError(c, errors.New("internal server error fetching payment details"))
        return
    }
    response.SuccessRaw(c, gin.H{"success": true, "paymentDetails": details})
}

// PreviousOrders 当前登录买家的历史订单
// @Summary 历史订单
// @Tags 支付
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Router /api/payment/getPreviousOrders [get]
func (h *Handler) PreviousOrders(c *gin.Context) {
    buyerID := c.GetString(middleware.ContextUserID)
    orders, err := h.details.PreviousOrders(c.Request.Context(), buyerID)
    if err != nil {
        logger.Error("previous orders lookup failed", zap.Error(err))
        response.InternalError(c, errors.New("something went wrong while fetching previous orders"))
        return
    }
    response.SuccessRaw(c, gin.H{"success": true, "orders": orders})
}

// GetKey 前端收银台需要的公开 key id
// @Summary 获取网关公钥 ID
// @Tags 支付
// @Success 200 {object} map[string]interface{}
// @Router /api/payment/getkey [get]
func (h *Handler) GetKey(c *gin.Context) {
    response.SuccessRaw(c, gin.H{"success": true, "key": h.keyID})
}

// bindErrMessage 把 validator 的错误链拍平成一条可读信息
func bindErrMessage(err error) string {
    var verrs validator.ValidationErrors
    if errors.As(err, &verrs) && len(verrs) > 0 {
        return fmt.Sprintf("invalid field %s: failed on %s", verrs[0].Field(), verrs[0].Tag())
    }
    return err.Error()
}
