package model

import (
    "time"
)

// 订单状态：pending 在 checkout 时写入，webhook/回调只允许
// pending → completed 或 pending → failed，终态不可再变。
const (
    OrderStatusPending   = "pending"
    OrderStatusCompleted = "completed"
    OrderStatusFailed    = "failed"
)

// Order 支付台账（payments 表）。以网关订单号做唯一关联键，
// 买家信息与单价在下单时快照，后续改动不影响历史订单。
type Order struct {
    ID               string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
    GatewayOrderID   string     `json:"razorpay_order_id" gorm:"type:varchar(64);uniqueIndex;not null"`
    GatewayPaymentID string     `json:"razorpay_payment_id" gorm:"type:varchar(64);index"`
    GatewaySignature string     `json:"razorpay_signature,omitempty" gorm:"type:varchar(128)"` // 校验通过后仅作审计留存
    BuyerID          string     `json:"user" gorm:"type:varchar(36);index:idx_payment_buyer_created;not null"`
    LineItems        []LineItem `json:"productData" gorm:"foreignKey:OrderID"`
    BuyerSnapshot    BuyerSnapshot `json:"userData" gorm:"embedded;embeddedPrefix:snapshot_"`
    TotalAmount      float64    `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
    Status           string     `json:"status" gorm:"type:varchar(16);index;not null;default:'pending'"`
    FailureReason    string     `json:"failureReason,omitempty" gorm:"type:varchar(255)"`
    PaidAt           *time.Time `json:"paidAt,omitempty"`
    CreatedAt        time.Time  `json:"createdAt" gorm:"index:idx_payment_buyer_created;not null"`
    UpdatedAt        time.Time  `json:"updatedAt" gorm:"not null"`
}

func (Order) TableName() string { return "payments" }

// LineItem 下单时固化的商品行，单价为当时价格
type LineItem struct {
    ID        string  `json:"-" gorm:"primaryKey;type:varchar(36)"`
    OrderID   string  `json:"-" gorm:"type:varchar(36);index;not null"`
    ProductID string  `json:"productId" gorm:"type:varchar(36);not null"`
    Quantity  int     `json:"quantity" gorm:"not null"`
    UnitPrice float64 `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
}

func (LineItem) TableName() string { return "payment_line_items" }

// BuyerSnapshot 下单时的买家联系/收货信息快照
type BuyerSnapshot struct {
    FirstName   string `json:"firstName" gorm:"type:varchar(64)"`
    LastName    string `json:"lastName" gorm:"type:varchar(64)"`
    Email       string `json:"userEmail" gorm:"type:varchar(128)"`
    PhoneNumber string `json:"phoneNumber" gorm:"type:varchar(32)"`
    Address     string `json:"address" gorm:"type:varchar(255)"`
    ZipCode     string `json:"zipCode" gorm:"type:varchar(16)"`
    City        string `json:"city" gorm:"type:varchar(64)"`
    State       string `json:"userState" gorm:"type:varchar(64)"`
}

// Terminal 是否已达终态
func (o *Order) Terminal() bool {
    return o.Status == OrderStatusCompleted || o.Status == OrderStatusFailed
}
