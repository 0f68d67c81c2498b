package model

import "time"

// CartItem 购物车行，(buyer, product) 唯一
type CartItem struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    BuyerID   string    `json:"user" gorm:"type:varchar(36);index:idx_cart_pair,unique;not null"`
    ProductID string    `json:"productId" gorm:"type:varchar(36);index:idx_cart_pair,unique;not null"`
    Quantity  int       `json:"quantity" gorm:"not null;default:1"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func (CartItem) TableName() string { return "carts" }
