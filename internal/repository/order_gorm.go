package repository

import (
    "context"
    "time"

    "gorm.io/gorm"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
)

type gormOrderRepository struct {
    db *gorm.DB
}

// NewOrderRepository 创建基于 gorm 的台账仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
    return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) CreatePending(ctx context.Context, order *model.Order) error {
    order.Status = model.OrderStatusPending
    return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
    var order model.Order
    err := r.db.WithContext(ctx).
        Preload("LineItems").
        Where("gateway_order_id = ?", gatewayOrderID).
        First(&order).Error
    if err != nil {
        return nil, err
    }
    return &order, nil
}

func (r *gormOrderRepository) GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Order, error) {
    var order model.Order
    err := r.db.WithContext(ctx).
        Preload("LineItems").
        Where("gateway_payment_id = ?", gatewayPaymentID).
        First(&order).Error
    if err != nil {
        return nil, err
    }
    return &order, nil
}

func (r *gormOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*model.Order, error) {
    var orders []*model.Order
    err := r.db.WithContext(ctx).
        Preload("LineItems").
        Where("buyer_id = ?", buyerID).
        Order("created_at DESC").
        Find(&orders).Error
    if err != nil {
        return nil, err
    }
    return orders, nil
}

// ConditionalTransition 单条 UPDATE 带状态前置条件，依赖行级原子性，
// 避免读-改-写在并发投递下丢更新。
func (r *gormOrderRepository) ConditionalTransition(ctx context.Context, gatewayOrderID, from, to string, fields TransitionFields) (bool, error) {
    updates := map[string]any{
        "status":     to,
        "updated_at": time.Now(),
    }
    switch to {
    case model.OrderStatusCompleted:
        now := time.Now()
        updates["paid_at"] = &now
        // 成功终态清空历史失败原因
        updates["failure_reason"] = ""
    case model.OrderStatusFailed:
        updates["failure_reason"] = fields.FailureReason
    }
    if fields.GatewayPaymentID != "" {
        updates["gateway_payment_id"] = fields.GatewayPaymentID
    }
    if fields.GatewaySignature != "" {
        updates["gateway_signature"] = fields.GatewaySignature
    }

    res := r.db.WithContext(ctx).
        Model(&model.Order{}).
        Where("gateway_order_id = ? AND status = ?", gatewayOrderID, from).
        Updates(updates)
    if res.Error != nil {
        return false, res.Error
    }
    return res.RowsAffected == 1, nil
}
