package repository

import (
    "context"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
)

// TransitionFields 终态化时一并落库的字段
type TransitionFields struct {
    GatewayPaymentID string
    GatewaySignature string
    FailureReason    string
}

// OrderRepository 支付台账仓储接口
type OrderRepository interface {
    // CreatePending 创建 pending 订单（gateway_order_id 唯一）
    CreatePending(ctx context.Context, order *model.Order) error

    // GetByGatewayOrderID 按网关订单号查询（含商品行）
    GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error)

    // GetByGatewayPaymentID 按网关支付号查询（含商品行）
    GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Order, error)

    // ListByBuyer 买家历史订单，按创建时间倒序
    ListByBuyer(ctx context.Context, buyerID string) ([]*model.Order, error)

    // ConditionalTransition 条件状态迁移：仅当当前状态仍为 from 时写入 to。
    // 返回是否真正发生了迁移；false 表示已被并发/重复投递抢先终态化。
    ConditionalTransition(ctx context.Context, gatewayOrderID, from, to string, fields TransitionFields) (bool, error)
}
