package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

// CatalogService manages the priced repair service catalog used for quoting.
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	List(ctx context.Context, search string, includeInactive bool) ([]dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	services repository.ServiceRepository
}

func NewCatalogService(services repository.ServiceRepository) CatalogService {
	return &catalogService{services: services}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &model.CatalogService{
		Name:          req.Name,
		Description:   req.Description,
		DeviceBrand:   req.DeviceBrand,
		DeviceModel:   req.DeviceModel,
		BasePrice:     req.BasePrice,
		EstimatedTime: req.EstimatedTime,
		Active:        true,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Servicio")
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) List(ctx context.Context, search string, includeInactive bool) ([]dto.ServiceResponse, error) {
	services, err := s.services.List(ctx, search, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, serviceToResponse(&services[i]))
	}
	return out, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Servicio")
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.DeviceBrand != nil {
		svc.DeviceBrand = req.DeviceBrand
	}
	if req.DeviceModel != nil {
		svc.DeviceModel = req.DeviceModel
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.EstimatedTime != nil {
		svc.EstimatedTime = req.EstimatedTime
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	resp := serviceToResponse(svc)
	return &resp, nil
}

// Delete deactivates the service; quotes referencing it keep working.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.services.FindByID(ctx, id); err != nil {
		return translateNotFound(err, "Servicio")
	}
	return s.services.SoftDelete(ctx, id)
}

func serviceToResponse(svc *model.CatalogService) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:            svc.ID.String(),
		Name:          svc.Name,
		Description:   svc.Description,
		DeviceBrand:   svc.DeviceBrand,
		DeviceModel:   svc.DeviceModel,
		BasePrice:     svc.BasePrice,
		EstimatedTime: svc.EstimatedTime,
		Active:        svc.Active,
	}
}
