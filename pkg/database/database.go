package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/config"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
)

// InitDB 按配置打开数据库并迁移表结构
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    var (
        db  *gorm.DB
        err error
    )
    switch cfg.Database.Driver {
    case "postgres":
        db, err = gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
    case "sqlite", "":
        db, err = gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
    default:
        return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
    }
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }
    if err := Migrate(db); err != nil {
        return nil, err
    }
    return db, nil
}

// Migrate 迁移全部业务表
func Migrate(db *gorm.DB) error {
    if err := db.AutoMigrate(
        &model.User{},
        &model.Product{},
        &model.CartItem{},
        &model.Order{},
        &model.LineItem{},
    ); err != nil {
        return fmt.Errorf("migrate tables: %w", err)
    }
    return nil
}
