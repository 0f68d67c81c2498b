package service

import (
    "context"
    "errors"
    "fmt"
    "math"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/gateway"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/repository"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/logger"
)

var (
    ErrEmptyCart      = errors.New("checkout requires at least one line item")
    ErrBadQuantity    = errors.New("line item quantity must be at least 1")
    ErrUnknownProduct = errors.New("unknown product in checkout")
    ErrMissingEmail   = errors.New("buyer email is required")
)

// CheckoutItem 请求中的商品行
type CheckoutItem struct {
    ProductID string `json:"productId" binding:"required"`
    Quantity  int    `json:"quantity" binding:"required"`
}

// CheckoutInput 一次结算请求的全部输入。所有状态仅随调用链传递，
// 请求之间不共享任何可变数据。
type CheckoutInput struct {
    BuyerID string
    Items   []CheckoutItem
    Buyer   model.BuyerSnapshot
}

// CheckoutService 下单：按当前价格计算总额，在网关创建订单，
// 本地落一条 pending 台账。
type CheckoutService interface {
    Checkout(ctx context.Context, in CheckoutInput) (*model.Order, error)
}

type checkoutService struct {
    orders   repository.OrderRepository
    products repository.ProductRepository
    client   gateway.Client
    shipping float64
    currency string
}

func NewCheckoutService(orders repository.OrderRepository, products repository.ProductRepository, client gateway.Client, shipping float64, currency string) CheckoutService {
    if currency == "" {
        currency = "INR"
    }
    return &checkoutService{orders: orders, products: products, client: client, shipping: shipping, currency: currency}
}

func (s *checkoutService) Checkout(ctx context.Context, in CheckoutInput) (*model.Order, error) {
    if len(in.Items) == 0 {
        return nil, ErrEmptyCart
    }
    if in.Buyer.Email == "" {
        return nil, ErrMissingEmail
    }
    ids := make([]string, 0, len(in.Items))
    for _, it := range in.Items {
        if it.Quantity < 1 {
            return nil, ErrBadQuantity
        }
        ids = append(ids, it.ProductID)
    }

    products, err := s.products.GetByIDs(ctx, ids)
    if err != nil {
        return nil, fmt.Errorf("load products: %w", err)
    }

    // 总额 = Σ 单价×数量 + 运费，单价在此刻固化进台账
    total := s.shipping
    lineItems := make([]model.LineItem, 0, len(in.Items))
    for _, it := range in.Items {
        p, ok := products[it.ProductID]
        if !ok {
            return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, it.ProductID)
        }
        total += p.Price * float64(it.Quantity)
        lineItems = append(lineItems, model.LineItem{
            ID:        uuid.New().String(),
            ProductID: it.ProductID,
            Quantity:  it.Quantity,
            UnitPrice: p.Price,
        })
    }

    gwOrder, err := s.client.CreateOrder(ctx, int64(math.Round(total*100)), s.currency)
    if err != nil {
        return nil, err
    }

    order := &model.Order{
        ID:             uuid.New().String(),
        GatewayOrderID: gwOrder.ID,
        BuyerID:        in.BuyerID,
        LineItems:      lineItems,
        BuyerSnapshot:  in.Buyer,
        TotalAmount:    total,
        Status:         model.OrderStatusPending,
    }
    if err := s.orders.CreatePending(ctx, order); err != nil {
        return nil, fmt.Errorf("persist pending order: %w", err)
    }

    logger.Info("checkout order created",
        zap.String("gateway_order_id", gwOrder.ID),
        zap.String("buyer_id", in.BuyerID),
        zap.Float64("total", total))
    return order, nil
}
