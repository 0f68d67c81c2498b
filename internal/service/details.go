package service

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"

    "gorm.io/gorm"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/repository"
)

var ErrOrderNotFound = errors.New("payment details not found")

// DetailsItem 详情里的商品行（名称/图片来自商品表，单价来自下单快照）
type DetailsItem struct {
    ProductID string  `json:"productId"`
    Name      string  `json:"name"`
    Image     string  `json:"image,omitempty"`
    Quantity  int     `json:"quantity"`
    UnitPrice float64 `json:"price"`
}

// PaymentDetails 买家侧支付详情视图
type PaymentDetails struct {
    ProductData      []DetailsItem       `json:"productData"`
    TotalAmount      float64             `json:"totalAmount"`
    ShippingCost     float64             `json:"shippingCost"`
    UserData         model.BuyerSnapshot `json:"userData"`
    GatewayOrderID   string              `json:"razorpay_order_id"`
    GatewayPaymentID string              `json:"razorpay_payment_id"`
    Status           string              `json:"status"`
    FailureReason    string              `json:"failureReason,omitempty"`
}

// DetailsService 支付详情与历史订单查询
type DetailsService interface {
    GetByPaymentID(ctx context.Context, gatewayPaymentID string) (*PaymentDetails, error)
    PreviousOrders(ctx context.Context, buyerID string) ([]*model.Order, error)
}

type detailsService struct {
    orders   repository.OrderRepository
    products repository.ProductRepository
    cache    *repository.DetailsCache
    shipping float64
}

func NewDetailsService(orders repository.OrderRepository, products repository.ProductRepository, cache *repository.DetailsCache, shipping float64) DetailsService {
    return &detailsService{orders: orders, products: products, cache: cache, shipping: shipping}
}

// GetByPaymentID cache-aside：先查缓存，miss 则读库并回填
func (s *detailsService) GetByPaymentID(ctx context.Context, gatewayPaymentID string) (*PaymentDetails, error) {
    if data, ok := s.cache.Get(ctx, gatewayPaymentID); ok {
        var cached PaymentDetails
        if err := json.Unmarshal(data, &cached); err == nil {
            return &cached, nil
        }
    }

    order, err := s.orders.GetByGatewayPaymentID(ctx, gatewayPaymentID)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrOrderNotFound
        }
        return nil, fmt.Errorf("lookup payment %s: %w", gatewayPaymentID, err)
    }

    details := s.buildDetails(ctx, order)
    if payload, err := json.Marshal(details); err == nil {
        s.cache.Set(ctx, gatewayPaymentID, payload)
    }
    return details, nil
}

func (s *detailsService) PreviousOrders(ctx context.Context, buyerID string) ([]*model.Order, error) {
    return s.orders.ListByBuyer(ctx, buyerID)
}

func (s *detailsService) buildDetails(ctx context.Context, order *model.Order) *PaymentDetails {
    ids := make([]string, 0, len(order.LineItems))
    for _, li := range order.LineItems {
        ids = append(ids, li.ProductID)
    }
    products, _ := s.products.GetByIDs(ctx, ids)

    items := make([]DetailsItem, 0, len(order.LineItems))
    for _, li := range order.LineItems {
        item := DetailsItem{
            ProductID: li.ProductID,
            Name:      li.ProductID,
            Quantity:  li.Quantity,
            // 展示下单时固化的单价，而非商品当前价格
            UnitPrice: li.UnitPrice,
        }
        if p, ok := products[li.ProductID]; ok {
            item.Name = p.Name
            item.Image = p.Image
        }
        items = append(items, item)
    }
    return &PaymentDetails{
        ProductData:      items,
        TotalAmount:      order.TotalAmount,
        ShippingCost:     s.shipping,
        UserData:         order.BuyerSnapshot,
        GatewayOrderID:   order.GatewayOrderID,
        GatewayPaymentID: order.GatewayPaymentID,
        Status:           order.Status,
        FailureReason:    order.FailureReason,
    }
}
