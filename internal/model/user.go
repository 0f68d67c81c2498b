package model

import "time"

// User 买家账号（注册/登录由外部服务负责，这里只做订单归属与快照来源）
type User struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    FirstName string    `json:"firstName" gorm:"type:varchar(64);not null"`
    LastName  string    `json:"lastName" gorm:"type:varchar(64)"`
    Email     string    `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
    Phone     string    `json:"phoneNumber" gorm:"type:varchar(32)"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }
