package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
)

// ProductRepository 结算侧只读的商品查询
type ProductRepository interface {
    GetByID(ctx context.Context, id string) (*model.Product, error)
    GetByIDs(ctx context.Context, ids []string) (map[string]*model.Product, error)
}

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepository{db: db} }

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
    var p model.Product
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
        return nil, err
    }
    return &p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Product, error) {
    var products []*model.Product
    if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
        return nil, err
    }
    res := make(map[string]*model.Product, len(products))
    for _, p := range products {
        res[p.ID] = p
    }
    return res, nil
}
