package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *model.CatalogService) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogService, error)
	List(ctx context.Context, search string, includeInactive bool) ([]model.CatalogService, error)
	Update(ctx context.Context, s *model.CatalogService) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type serviceRepo struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) ServiceRepository { return &serviceRepo{db: db} }

func (r *serviceRepo) Create(ctx context.Context, s *model.CatalogService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *serviceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogService, error) {
	var s model.CatalogService
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *serviceRepo) List(ctx context.Context, search string, includeInactive bool) ([]model.CatalogService, error) {
	var services []model.CatalogService
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	err := q.Order("name ASC").Find(&services).Error
	return services, err
}

func (r *serviceRepo) Update(ctx context.Context, s *model.CatalogService) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *serviceRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CatalogService{}).Where("id = ?", id).Update("active", false).Error
}
