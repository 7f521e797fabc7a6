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

type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.RepairOrder) error
	// NextOrderNumber draws from a database sequence, so concurrent intakes
	// can never collide on a number.
	NextOrderNumber(tx *gorm.DB) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.RepairOrder, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.RepairOrder, int64, error)
	Save(ctx context.Context, o *model.RepairOrder) error
	SaveTx(tx *gorm.DB, o *model.RepairOrder) error
	CreateHistoryTx(tx *gorm.DB, h *model.OrderStatusHistory) error

	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]model.RepairOrder, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.RepairOrder, error)
	ListReceivedOn(ctx context.Context, day time.Time) ([]model.RepairOrder, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountReceivedSince(ctx context.Context, since time.Time) (int64, error)
	RevenueDeliveredSince(ctx context.Context, since time.Time) (decimal.Decimal, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.RepairOrder) error {
	return tx.Create(o).Error
}

func (r *orderRepo) NextOrderNumber(tx *gorm.DB) (string, error) {
	var n int64
	if err := tx.Raw("SELECT nextval('repair_order_number_seq')").Scan(&n).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%06d", n), nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RepairOrder, error) {
	var o model.RepairOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("StatusHistory.ChangedBy").
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.RepairOrder, int64, error) {
	var orders []model.RepairOrder
	var total int64

	q := r.db.WithContext(ctx).Model(&model.RepairOrder{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Joins("LEFT JOIN customers ON customers.id = repair_orders.customer_id").
			Where(
				"repair_orders.order_number ILIKE ? OR repair_orders.device_brand ILIKE ? OR repair_orders.device_model ILIKE ? OR customers.first_name ILIKE ? OR customers.last_name ILIKE ?",
				like, like, like, like, like,
			)
	}
	if filter.Status != "" {
		q = q.Where("repair_orders.status = ?", filter.Status)
	}
	if filter.DeviceType != "" {
		q = q.Where("repair_orders.device_type = ?", filter.DeviceType)
	}
	if filter.AssignedTo != "" {
		q = q.Where("repair_orders.assigned_to_id = ?", filter.AssignedTo)
	}
	if filter.DateFrom != "" {
		q = q.Where("repair_orders.received_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("repair_orders.received_date < ?::date + interval '1 day'", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").Preload("AssignedTo").
		Order("repair_orders.received_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) Save(ctx context.Context, o *model.RepairOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) SaveTx(tx *gorm.DB, o *model.RepairOrder) error {
	return tx.Save(o).Error
}

func (r *orderRepo) CreateHistoryTx(tx *gorm.DB, h *model.OrderStatusHistory) error {
	return tx.Create(h).Error
}

func (r *orderRepo) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]model.RepairOrder, error) {
	var orders []model.RepairOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("assigned_to_id = ? AND status NOT IN ?", userID, []string{model.StatusDelivered, model.StatusCancelled}).
		Order("received_date ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.RepairOrder, error) {
	var orders []model.RepairOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("AssignedTo").
		Where("customer_id = ?", customerID).
		Order("received_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListReceivedOn(ctx context.Context, day time.Time) ([]model.RepairOrder, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var orders []model.RepairOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("AssignedTo").
		Where("received_date >= ? AND received_date < ?", start, end).
		Order("received_date ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.RepairOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *orderRepo) CountReceivedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RepairOrder{}).
		Where("received_date >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *orderRepo) RevenueDeliveredSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.RepairOrder{}).
		Where("status = ? AND delivered_date >= ?", model.StatusDelivered, since).
		Select("COALESCE(SUM(COALESCE(final_cost, estimated_cost, 0)), 0)").
		Row()
	err := row.Scan(&revenue)
	return revenue, err
}
