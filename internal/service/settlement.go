package service

import (
    "context"
    "errors"
    "fmt"

    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/gateway"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/repository"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/logger"
)

// SettlementService 订单状态机。webhook 与浏览器回跳两个入口
// 都收敛到 Complete/Fail，保证业务逻辑单点。
//
// 幂等性：终态化是一条带 status=pending 前置条件的 UPDATE，
// 同一事件投递 N 次只有第一次真正迁移状态并触发副作用，
// 其余都是无副作用的确认；completed/failed 互相也不可覆盖。
type SettlementService interface {
    // HandleEvent 处理已验签的 webhook 事件
    HandleEvent(ctx context.Context, ev gateway.Event) error

    // Complete 验证通过的成功结算：pending → completed，触发副作用管线
    Complete(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) error

    // Fail 失败结算：pending → failed，记录原因
    Fail(ctx context.Context, gatewayOrderID, gatewayPaymentID, reason string) error
}

type settlementService struct {
    orders  repository.OrderRepository
    effects *SideEffectPipeline
    cache   *repository.DetailsCache
}

func NewSettlementService(orders repository.OrderRepository, effects *SideEffectPipeline, cache *repository.DetailsCache) SettlementService {
    return &settlementService{orders: orders, effects: effects, cache: cache}
}

func (s *settlementService) HandleEvent(ctx context.Context, ev gateway.Event) error {
    switch e := ev.(type) {
    case gateway.PaymentCaptured:
        return s.Complete(ctx, e.GatewayOrderID, e.GatewayPaymentID, "")
    case gateway.PaymentFailed:
        return s.Fail(ctx, e.GatewayOrderID, e.GatewayPaymentID, e.Reason)
    default:
        logger.Info("webhook event ignored", zap.String("event", ev.EventType()))
        return nil
    }
}

func (s *settlementService) Complete(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) error {
    order, err := s.orders.GetByGatewayOrderID(ctx, gatewayOrderID)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            // 本系统没有这条订单（已清除或从未创建），确认即可，网关不必重投
            logger.Warn("settlement for unknown order", zap.String("gateway_order_id", gatewayOrderID))
            return nil
        }
        return fmt.Errorf("lookup order %s: %w", gatewayOrderID, err)
    }
    if order.Terminal() {
        logger.Debug("duplicate settlement delivery",
            zap.String("gateway_order_id", gatewayOrderID),
            zap.String("status", order.Status))
        return nil
    }

    moved, err := s.orders.ConditionalTransition(ctx, gatewayOrderID,
        model.OrderStatusPending, model.OrderStatusCompleted,
        repository.TransitionFields{GatewayPaymentID: gatewayPaymentID, GatewaySignature: signature})
    if err != nil {
        return fmt.Errorf("complete order %s: %w", gatewayOrderID, err)
    }
    if !moved {
        // 并发投递抢先终态化，按重复处理
        logger.Debug("settlement lost transition race", zap.String("gateway_order_id", gatewayOrderID))
        return nil
    }

    logger.Info("order completed",
        zap.String("gateway_order_id", gatewayOrderID),
        zap.String("gateway_payment_id", gatewayPaymentID))

    s.cache.Invalidate(ctx, gatewayPaymentID)

    // 副作用只在真正发生 pending→completed 迁移的这一次执行；
    // 管线内部全部 best-effort，失败不回滚已结算状态。
    order.Status = model.OrderStatusCompleted
    order.GatewayPaymentID = gatewayPaymentID
    if s.effects != nil {
        s.effects.Run(ctx, order)
    }
    return nil
}

func (s *settlementService) Fail(ctx context.Context, gatewayOrderID, gatewayPaymentID, reason string) error {
    order, err := s.orders.GetByGatewayOrderID(ctx, gatewayOrderID)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            logger.Warn("failure event for unknown order", zap.String("gateway_order_id", gatewayOrderID))
            return nil
        }
        return fmt.Errorf("lookup order %s: %w", gatewayOrderID, err)
    }
    if order.Terminal() {
        if order.Status == model.OrderStatusCompleted {
            // 迟到的失败事件不得覆盖已完成订单，留警告供人工核对
            logger.Warn("late failure event for completed order",
                zap.String("gateway_order_id", gatewayOrderID),
                zap.String("reason", reason))
        }
        return nil
    }

    moved, err := s.orders.ConditionalTransition(ctx, gatewayOrderID,
        model.OrderStatusPending, model.OrderStatusFailed,
        repository.TransitionFields{GatewayPaymentID: gatewayPaymentID, FailureReason: reason})
    if err != nil {
        return fmt.Errorf("fail order %s: %w", gatewayOrderID, err)
    }
    if !moved {
        logger.Debug("failure event lost transition race", zap.String("gateway_order_id", gatewayOrderID))
        return nil
    }

    logger.Info("order failed",
        zap.String("gateway_order_id", gatewayOrderID),
        zap.String("reason", reason))
    s.cache.Invalidate(ctx, gatewayPaymentID)
    return nil
}
