package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	NextSaleNumber(tx *gorm.DB) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	ListForDay(ctx context.Context, day time.Time) ([]model.Sale, error)

	TotalsForRange(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]dto.TopProductStat, error)
	TotalsByPaymentMethod(ctx context.Context, from, to time.Time) ([]dto.PaymentMethodStat, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) NextSaleNumber(tx *gorm.DB) (string, error) {
	var n int64
	if err := tx.Raw("SELECT nextval('sale_number_seq')").Scan(&n).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("VTA-%06d", n), nil
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Employee").
		Preload("Items").
		Preload("Items.Product").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Joins("LEFT JOIN customers ON customers.id = sales.customer_id").
			Where(
				"sales.sale_number ILIKE ? OR sales.customer_name ILIKE ? OR customers.first_name ILIKE ? OR customers.last_name ILIKE ?",
				like, like, like, like,
			)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("sales.payment_method = ?", filter.PaymentMethod)
	}
	if filter.DateFrom != "" {
		q = q.Where("sales.date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("sales.date < ?::date + interval '1 day'", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").Preload("Employee").Preload("Items").
		Order("sales.date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListForDay(ctx context.Context, day time.Time) ([]model.Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Employee").Preload("Items").
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TotalsForRange(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error) {
	var count int64
	var total decimal.Decimal

	q := r.db.WithContext(ctx).Model(&model.Sale{}).Where("date >= ? AND date < ?", from, to)
	if err := q.Count(&count).Error; err != nil {
		return 0, decimal.Zero, err
	}
	row := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("date >= ? AND date < ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, decimal.Zero, err
	}
	return count, total, nil
}

func (r *saleRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]dto.TopProductStat, error) {
	var stats []dto.TopProductStat
	err := r.db.WithContext(ctx).
		Table("sale_items").
		Select("products.name AS product_name, products.sku AS product_sku, SUM(sale_items.quantity) AS quantity, COALESCE(SUM(sale_items.subtotal), 0) AS total").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sales.date >= ?", since).
		Group("products.name, products.sku").
		Order("quantity DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

func (r *saleRepo) TotalsByPaymentMethod(ctx context.Context, from, to time.Time) ([]dto.PaymentMethodStat, error) {
	var stats []dto.PaymentMethodStat
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("date >= ? AND date < ?", from, to).
		Group("payment_method").
		Order("total DESC").
		Scan(&stats).Error
	return stats, err
}
