package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context, search string) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Categoria")
	}
	count, err := s.categories.CountProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, ProductsCount: count}, nil
}

func (s *categoryService) List(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		count, err := s.categories.CountProducts(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, ProductsCount: count})
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Categoria")
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

// Delete rejects categories that still have products (protect semantics).
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return translateNotFound(err, "Categoria")
	}
	count, err := s.categories.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &apierror.ReferentialConflictError{
			Detail:   fmt.Sprintf("No se puede eliminar la categoria: tiene %d productos asociados", count),
			CountKey: "products_count",
			Count:    count,
		}
	}
	return s.categories.Delete(ctx, id)
}
