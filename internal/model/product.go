package model

import "time"

// Product 商品（目录 CRUD 由外部服务负责，结算只读价格与展示字段）
type Product struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    Name      string    `json:"name" gorm:"type:varchar(128);not null"`
    Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
    Image     string    `json:"image" gorm:"type:varchar(255)"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }
