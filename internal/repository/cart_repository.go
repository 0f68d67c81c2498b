package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
)

// CartRepository 购物车仓储；结算侧只用到 ClearByBuyer
type CartRepository interface {
    Add(ctx context.Context, buyerID, productID string, quantity int) error
    ListByBuyer(ctx context.Context, buyerID string) ([]*model.CartItem, error)
    ClearByBuyer(ctx context.Context, buyerID string) error
}

type cartRepository struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepository{db: db} }

func (r *cartRepository) Add(ctx context.Context, buyerID, productID string, quantity int) error {
    item := &model.CartItem{ID: uuid.New().String(), BuyerID: buyerID, ProductID: productID, Quantity: quantity}
    // 幂等：重复加购不报错
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

func (r *cartRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*model.CartItem, error) {
    var items []*model.CartItem
    err := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Find(&items).Error
    return items, err
}

func (r *cartRepository) ClearByBuyer(ctx context.Context, buyerID string) error {
    return r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Delete(&model.CartItem{}).Error
}
