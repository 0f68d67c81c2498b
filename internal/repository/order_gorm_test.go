package repository

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
)

func setupOrderDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, db.AutoMigrate(&model.Order{}, &model.LineItem{}))
    return db
}

func pendingOrder(id string) *model.Order {
    return &model.Order{
        ID:             "local-" + id,
        GatewayOrderID: id,
        BuyerID:        "buyer-1",
        TotalAmount:    1100,
        LineItems:      []model.LineItem{{ID: "li-" + id, ProductID: "P1", Quantity: 2, UnitPrice: 500}},
    }
}

func TestCreatePendingEnforcesUniqueGatewayOrderID(t *testing.T) {
    db := setupOrderDB(t)
    repo := NewOrderRepository(db)
    ctx := context.Background()

    require.NoError(t, repo.CreatePending(ctx, pendingOrder("order_1")))

    dup := pendingOrder("order_1")
    dup.ID = "local-other"
    dup.LineItems[0].ID = "li-other"
    assert.Error(t, repo.CreatePending(ctx, dup))
}

func TestConditionalTransitionCompletesOnlyPending(t *testing.T) {
    db := setupOrderDB(t)
    repo := NewOrderRepository(db)
    ctx := context.Background()
    require.NoError(t, repo.CreatePending(ctx, pendingOrder("order_2")))

    moved, err := repo.ConditionalTransition(ctx, "order_2", model.OrderStatusPending, model.OrderStatusCompleted,
        TransitionFields{GatewayPaymentID: "pay_2", GatewaySignature: "sig"})
    require.NoError(t, err)
    assert.True(t, moved)

    got, err := repo.GetByGatewayOrderID(ctx, "order_2")
    require.NoError(t, err)
    assert.Equal(t, model.OrderStatusCompleted, got.Status)
    assert.Equal(t, "pay_2", got.GatewayPaymentID)
    assert.Equal(t, "sig", got.GatewaySignature)
    assert.NotNil(t, got.PaidAt)

    // 第二次迁移必须空转
    moved, err = repo.ConditionalTransition(ctx, "order_2", model.OrderStatusPending, model.OrderStatusCompleted,
        TransitionFields{GatewayPaymentID: "pay_2b"})
    require.NoError(t, err)
    assert.False(t, moved)

    got, err = repo.GetByGatewayOrderID(ctx, "order_2")
    require.NoError(t, err)
    assert.Equal(t, "pay_2", got.GatewayPaymentID)
}

func TestConditionalTransitionFailedKeepsReasonThenRefusesComplete(t *testing.T) {
    db := setupOrderDB(t)
    repo := NewOrderRepository(db)
    ctx := context.Background()
    require.NoError(t, repo.CreatePending(ctx, pendingOrder("order_3")))

    moved, err := repo.ConditionalTransition(ctx, "order_3", model.OrderStatusPending, model.OrderStatusFailed,
        TransitionFields{FailureReason: "insufficient funds"})
    require.NoError(t, err)
    assert.True(t, moved)

    moved, err = repo.ConditionalTransition(ctx, "order_3", model.OrderStatusPending, model.OrderStatusCompleted,
        TransitionFields{GatewayPaymentID: "pay_3"})
    require.NoError(t, err)
    assert.False(t, moved)

    got, err := repo.GetByGatewayOrderID(ctx, "order_3")
    require.NoError(t, err)
    assert.Equal(t, model.OrderStatusFailed, got.Status)
    assert.Equal(t, "insufficient funds", got.FailureReason)
}

func TestConditionalTransitionUnknownOrder(t *testing.T) {
    db := setupOrderDB(t)
    repo := NewOrderRepository(db)

    moved, err := repo.ConditionalTransition(context.Background(), "order_ghost",
        model.OrderStatusPending, model.OrderStatusCompleted, TransitionFields{})
    require.NoError(t, err)
    assert.False(t, moved)
}

func TestListByBuyerNewestFirst(t *testing.T) {
    db := setupOrderDB(t)
    repo := NewOrderRepository(db)
    ctx := context.Background()

    first := pendingOrder("order_a")
    require.NoError(t, repo.CreatePending(ctx, first))
    second := pendingOrder("order_b")
    require.NoError(t, repo.CreatePending(ctx, second))
    require.NoError(t, db.Model(&model.Order{}).Where("gateway_order_id = ?", "order_b").
        Update("created_at", time.Now().Add(time.Hour)).Error)

    orders, err := repo.ListByBuyer(ctx, "buyer-1")
    require.NoError(t, err)
    require.Len(t, orders, 2)
    assert.Equal(t, "order_b", orders[0].GatewayOrderID)
}
