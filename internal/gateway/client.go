package gateway

import (
    "context"
    "fmt"

    razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder 网关侧创建的订单
type GatewayOrder struct {
    ID       string
    Amount   int64 // 最小货币单位（paise）
    Currency string
}

// Client 出站网关 SDK 的最小接口，便于用桩测试结算链路
type Client interface {
    CreateOrder(ctx context.Context, amountPaise int64, currency string) (*GatewayOrder, error)
}

type razorpayClient struct {
    client *razorpay.Client
}

// NewClient 基于官方 SDK 创建网关客户端
func NewClient(keyID, keySecret string) Client {
    return &razorpayClient{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder 在网关创建订单；SDK 本身不接受 context，ctx 仅保留接口一致性
func (c *razorpayClient) CreateOrder(_ context.Context, amountPaise int64, currency string) (*GatewayOrder, error) {
    data := map[string]interface{}{
        "amount":   amountPaise,
        "currency": currency,
    }
    body, err := c.client.Order.Create(data, nil)
    if err != nil {
        return nil, fmt.Errorf("gateway create order: %w", err)
    }
    id, _ := body["id"].(string)
    if id == "" {
        return nil, fmt.Errorf("gateway create order: response without id")
    }
    return &GatewayOrder{ID: id, Amount: amountPaise, Currency: currency}, nil
}
