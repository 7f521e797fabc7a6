package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListLowStock(ctx context.Context) ([]model.Product, error)
	Stats(ctx context.Context) (total int64, lowStock int64, value decimal.Decimal, err error)

	// FindByIDForUpdate takes a SELECT ... FOR UPDATE row lock so the
	// check-then-decrement of a stock mutation cannot race a concurrent one.
	// Must run inside a transaction.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ? AND active = true", sku).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	switch filter.Active {
	case "all":
	case "false":
		q = q.Where("active = false")
	default:
		q = q.Where("active = true")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.LowStock {
		q = q.Where("quantity <= min_stock")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("active", false).Error
}

func (r *productRepo) ListLowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("active = true AND quantity <= min_stock").
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Stats(ctx context.Context) (int64, int64, decimal.Decimal, error) {
	var total, lowStock int64
	var value decimal.Decimal

	db := r.db.WithContext(ctx).Model(&model.Product{})
	if err := db.Where("active = true").Count(&total).Error; err != nil {
		return 0, 0, decimal.Zero, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("active = true AND quantity <= min_stock").
		Count(&lowStock).Error; err != nil {
		return 0, 0, decimal.Zero, err
	}
	row := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("active = true").
		Select("COALESCE(SUM(unit_price * quantity), 0)").
		Row()
	if err := row.Scan(&value); err != nil {
		return 0, 0, decimal.Zero, err
	}
	return total, lowStock, value, nil
}

func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *productRepo) UpdateQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Update("quantity", quantity).Error
}
