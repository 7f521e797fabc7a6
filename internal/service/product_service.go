package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

const priceCacheTTL = 5 * time.Minute

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListLowStock(ctx context.Context) ([]dto.ProductResponse, error)
	Statistics(ctx context.Context) (*dto.InventoryStatsResponse, error)
	// PriceBySKU is the public price-check lookup, cached in Redis so the
	// in-store price checker can hammer it without touching Postgres.
	PriceBySKU(ctx context.Context, sku string) (*dto.PriceLookupResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, rdb *redis.Client, log zerolog.Logger) ProductService {
	return &productService{products: products, categories: categories, rdb: rdb, log: log}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, translateNotFound(err, "Categoria")
	}

	p := &model.Product{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		UnitPrice:   req.UnitPrice,
		SalePrice:   req.SalePrice,
		Active:      true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Producto")
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Producto")
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			return nil, translateNotFound(err, "Categoria")
		}
		p.CategoryID = categoryID
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.SalePrice != nil {
		p.SalePrice = *req.SalePrice
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidatePriceCache(ctx, p.SKU)
	resp := productToResponse(p)
	return &resp, nil
}

// Delete deactivates the product; ledger history and past sales keep their
// references intact.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return translateNotFound(err, "Producto")
	}
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidatePriceCache(ctx, p.SKU)
	return nil
}

func (s *productService) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Statistics(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	total, lowStock, value, err := s.products.Stats(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryStatsResponse{
		TotalProducts:       total,
		LowStockCount:       lowStock,
		TotalInventoryValue: value,
		CategoriesCount:     categories,
	}, nil
}

func (s *productService) PriceBySKU(ctx context.Context, sku string) (*dto.PriceLookupResponse, error) {
	cacheKey := "price:" + sku

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.PriceLookupResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, translateNotFound(err, "Producto")
	}
	resp := &dto.PriceLookupResponse{SKU: p.SKU, Name: p.Name, SalePrice: p.SalePrice}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, priceCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("sku", sku).Msg("price cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *productService) invalidatePriceCache(ctx context.Context, sku string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "price:"+sku).Err(); err != nil {
		s.log.Warn().Err(err).Str("sku", sku).Msg("price cache invalidation failed")
	}
}

func productToResponse(p *model.Product) dto.ProductResponse {
	categoryName := ""
	if p.Category != nil {
		categoryName = p.Category.Name
	}
	return dto.ProductResponse{
		ID:           p.ID.String(),
		CategoryID:   p.CategoryID.String(),
		CategoryName: categoryName,
		Name:         p.Name,
		Description:  p.Description,
		SKU:          p.SKU,
		Quantity:     p.Quantity,
		MinStock:     p.MinStock,
		UnitPrice:    p.UnitPrice,
		SalePrice:    p.SalePrice,
		Active:       p.Active,
		IsLowStock:   p.IsLowStock(),
		TotalValue:   p.TotalValue(),
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
