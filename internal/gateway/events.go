package gateway

import (
    "encoding/json"
    "errors"
    "fmt"
)

// 网关事件类型。order.paid 与 payment.captured 在业务上重复，
// 走忽略路径；未知类型同样忽略，避免网关对非本系统事件反复重投。
const (
    EventPaymentCaptured = "payment.captured"
    EventPaymentFailed   = "payment.failed"
    EventOrderPaid       = "order.paid"
)

var ErrMalformedEvent = errors.New("malformed webhook payload")

// Event 解析后的 webhook 事件（按 event 字段区分的标签联合）
type Event interface {
    EventType() string
}

// PaymentCaptured 支付成功事件
type PaymentCaptured struct {
    GatewayOrderID   string
    GatewayPaymentID string
}

func (PaymentCaptured) EventType() string { return EventPaymentCaptured }

// PaymentFailed 支付失败事件
type PaymentFailed struct {
    GatewayOrderID   string
    GatewayPaymentID string
    Reason           string
}

func (PaymentFailed) EventType() string { return EventPaymentFailed }

// Ignored 已识别但无需处理的事件
type Ignored struct {
    Type string
}

func (e Ignored) EventType() string { return e.Type }

// 网关 webhook 外层信封
type envelope struct {
    Event   string `json:"event"`
    Payload struct {
        Payment struct {
            Entity paymentEntity `json:"entity"`
        } `json:"payment"`
    } `json:"payload"`
}

type paymentEntity struct {
    ID               string `json:"id"`
    OrderID          string `json:"order_id"`
    ErrorDescription string `json:"error_description"`
}

// ParseEvent 解析已验签的原始 webhook 体。载荷畸形返回 ErrMalformedEvent；
// 未知 event 不视为错误，归入 Ignored。
func ParseEvent(rawBody []byte) (Event, error) {
    var env envelope
    if err := json.Unmarshal(rawBody, &env); err != nil {
        return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
    }
    if env.Event == "" {
        return nil, fmt.Errorf("%w: missing event type", ErrMalformedEvent)
    }

    switch env.Event {
    case EventPaymentCaptured:
        entity := env.Payload.Payment.Entity
        if entity.OrderID == "" {
            return nil, fmt.Errorf("%w: captured event without order id", ErrMalformedEvent)
        }
        return PaymentCaptured{GatewayOrderID: entity.OrderID, GatewayPaymentID: entity.ID}, nil
    case EventPaymentFailed:
        entity := env.Payload.Payment.Entity
        if entity.OrderID == "" {
            return nil, fmt.Errorf("%w: failed event without order id", ErrMalformedEvent)
        }
        reason := entity.ErrorDescription
        if reason == "" {
            reason = "payment failed"
        }
        return PaymentFailed{GatewayOrderID: entity.OrderID, GatewayPaymentID: entity.ID, Reason: reason}, nil
    default:
        // 包括 order.paid：成功路径已由 payment.captured 覆盖
        return Ignored{Type: env.Event}, nil
    }
}
