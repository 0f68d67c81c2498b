package service

import (
    "context"
    "fmt"
    "sync/atomic"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/gateway"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/repository"
)

type stubGateway struct {
    calls atomic.Int64
    fail  bool

    lastAmount   int64
    lastCurrency string
}

func (g *stubGateway) CreateOrder(_ context.Context, amountPaise int64, currency string) (*gateway.GatewayOrder, error) {
    if g.fail {
        return nil, assert.AnError
    }
    n := g.calls.Add(1)
    g.lastAmount = amountPaise
    g.lastCurrency = currency
    return &gateway.GatewayOrder{ID: fmt.Sprintf("order_test_%d", n), Amount: amountPaise, Currency: currency}, nil
}

func buyer() model.BuyerSnapshot {
    return model.BuyerSnapshot{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", City: "Pune", ZipCode: "411001"}
}

func TestCheckoutComputesTotalWithShipping(t *testing.T) {
    db := setupDB(t)
    require.NoError(t, db.Create(&model.Product{ID: "P1", Name: "Leather Satchel", Price: 500}).Error)

    gw := &stubGateway{}
    orders := repository.NewOrderRepository(db)
    svc := NewCheckoutService(orders, repository.NewProductRepository(db), gw, 100, "INR")

    order, err := svc.Checkout(context.Background(), CheckoutInput{
        BuyerID: "buyer-1",
        Items:   []CheckoutItem{{ProductID: "P1", Quantity: 2}},
        Buyer:   buyer(),
    })
    require.NoError(t, err)

    // 500×2 + 运费 100
    assert.Equal(t, 1100.0, order.TotalAmount)
    assert.Equal(t, model.OrderStatusPending, order.Status)
    assert.Equal(t, "order_test_1", order.GatewayOrderID)
    assert.Equal(t, int64(110000), gw.lastAmount) // paise
    assert.Equal(t, "INR", gw.lastCurrency)

    persisted, err := orders.GetByGatewayOrderID(context.Background(), "order_test_1")
    require.NoError(t, err)
    assert.Equal(t, model.OrderStatusPending, persisted.Status)
    require.Len(t, persisted.LineItems, 1)
    assert.Equal(t, 500.0, persisted.LineItems[0].UnitPrice)
}

func TestCheckoutTotalImmuneToLaterPriceChange(t *testing.T) {
    db := setupDB(t)
    require.NoError(t, db.Create(&model.Product{ID: "P1", Name: "Leather Satchel", Price: 500}).Error)

    orders := repository.NewOrderRepository(db)
    svc := NewCheckoutService(orders, repository.NewProductRepository(db), &stubGateway{}, 100, "INR")

    order, err := svc.Checkout(context.Background(), CheckoutInput{
        BuyerID: "buyer-1",
        Items:   []CheckoutItem{{ProductID: "P1", Quantity: 2}},
        Buyer:   buyer(),
    })
    require.NoError(t, err)

    // 事后涨价不影响已创建订单
    require.NoError(t, db.Model(&model.Product{}).Where("id = ?", "P1").Update("price", 999).Error)

    persisted, err := orders.GetByGatewayOrderID(context.Background(), order.GatewayOrderID)
    require.NoError(t, err)
    assert.Equal(t, 1100.0, persisted.TotalAmount)
    assert.Equal(t, 500.0, persisted.LineItems[0].UnitPrice)
}

func TestCheckoutValidation(t *testing.T) {
    db := setupDB(t)
    require.NoError(t, db.Create(&model.Product{ID: "P1", Name: "Leather Satchel", Price: 500}).Error)
    svc := NewCheckoutService(repository.NewOrderRepository(db), repository.NewProductRepository(db), &stubGateway{}, 100, "INR")
    ctx := context.Background()

    _, err := svc.Checkout(ctx, CheckoutInput{BuyerID: "b", Buyer: buyer()})
    assert.ErrorIs(t, err, ErrEmptyCart)

    _, err = svc.Checkout(ctx, CheckoutInput{BuyerID: "b", Items: []CheckoutItem{{ProductID: "P1", Quantity: 0}}, Buyer: buyer()})
    assert.ErrorIs(t, err, ErrBadQuantity)

    _, err = svc.Checkout(ctx, CheckoutInput{BuyerID: "b", Items: []CheckoutItem{{ProductID: "nope", Quantity: 1}}, Buyer: buyer()})
    assert.ErrorIs(t, err, ErrUnknownProduct)

    noEmail := buyer()
    noEmail.Email = ""
    _, err = svc.Checkout(ctx, CheckoutInput{BuyerID: "b", Items: []CheckoutItem{{ProductID: "P1", Quantity: 1}}, Buyer: noEmail})
    assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestCheckoutGatewayFailureDoesNotPersist(t *testing.T) {
    db := setupDB(t)
    require.NoError(t, db.Create(&model.Product{ID: "P1", Name: "Leather Satchel", Price: 500}).Error)
    orders := repository.NewOrderRepository(db)
    svc := NewCheckoutService(orders, repository.NewProductRepository(db), &stubGateway{fail: true}, 100, "INR")

    _, err := svc.Checkout(context.Background(), CheckoutInput{
        BuyerID: "buyer-1",
        Items:   []CheckoutItem{{ProductID: "P1", Quantity: 1}},
        Buyer:   buyer(),
    })
    require.Error(t, err)

    var count int64
    require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
    assert.Zero(t, count)
}
