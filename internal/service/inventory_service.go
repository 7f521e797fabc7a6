package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

// InventoryService owns the stock ledger. Every quantity change — manual
// movements and (when enabled) sale deductions — goes through here so the
// movement history always reconciles with the cached product quantity.
type InventoryService interface {
	ApplyMovement(ctx context.Context, productID uuid.UUID, req dto.ApplyMovementRequest, userID *uuid.UUID) (*dto.MovementResponse, error)
	// ApplyMovementTx is the in-transaction variant the sale flow composes
	// with its own writes. The caller owns the transaction.
	ApplyMovementTx(tx *gorm.DB, productID uuid.UUID, movementType string, quantity int, reason string, userID *uuid.UUID) (*model.StockMovement, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	ProductStock(ctx context.Context, productID uuid.UUID) (*dto.ProductStockResponse, error)
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	log       zerolog.Logger
}

func NewInventoryService(products repository.ProductRepository, movements repository.StockMovementRepository, log zerolog.Logger) InventoryService {
	return &inventoryService{products: products, movements: movements, log: log}
}

func (s *inventoryService) ApplyMovement(ctx context.Context, productID uuid.UUID, req dto.ApplyMovementRequest, userID *uuid.UUID) (*dto.MovementResponse, error) {
	if !model.ValidMovementType(req.MovementType) {
		return nil, &apierror.InvalidStatusError{Status: req.MovementType}
	}

	var movement *model.StockMovement
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		var err error
		movement, err = s.ApplyMovementTx(tx, productID, req.MovementType, req.Quantity, req.Reason, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", productID.String()).
		Str("movement_type", movement.MovementType).
		Int("previous", movement.PreviousQuantity).
		Int("new", movement.NewQuantity).
		Msg("stock movement applied")

	resp := movementToResponse(movement)
	return &resp, nil
}

func (s *inventoryService) ApplyMovementTx(tx *gorm.DB, productID uuid.UUID, movementType string, quantity int, reason string, userID *uuid.UUID) (*model.StockMovement, error) {
	// Row lock: the check below and the quantity write must be atomic
	// against concurrent movements on the same product.
	p, err := s.products.FindByIDForUpdate(tx, productID)
	if err != nil {
		return nil, translateNotFound(err, "Producto")
	}

	previous := p.Quantity
	var next int
	switch movementType {
	case model.MovementIn:
		next = previous + quantity
	case model.MovementOut:
		if quantity > previous {
			return nil, &apierror.InsufficientStockError{
				Product:   p.Name,
				Available: previous,
				Requested: quantity,
			}
		}
		next = previous - quantity
	case model.MovementAdjustment:
		next = quantity
	default:
		return nil, &apierror.InvalidStatusError{Status: movementType}
	}

	movement := &model.StockMovement{
		ProductID:        productID,
		MovementType:     movementType,
		Quantity:         quantity,
		PreviousQuantity: previous,
		NewQuantity:      next,
		Reason:           reason,
		UserID:           userID,
	}
	if err := s.movements.CreateTx(tx, movement); err != nil {
		return nil, err
	}
	if err := s.products.UpdateQuantityTx(tx, productID, next); err != nil {
		return nil, err
	}
	movement.Product = p
	return movement, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) ProductStock(ctx context.Context, productID uuid.UUID) (*dto.ProductStockResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err, "Producto")
	}
	movements, _, err := s.movements.List(ctx, dto.MovementFilter{
		ProductID: productID.String(),
		Page:      1,
		Limit:     20,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, movementToResponse(&movements[i]))
	}
	return &dto.ProductStockResponse{
		ProductID:  p.ID.String(),
		Name:       p.Name,
		Quantity:   p.Quantity,
		MinStock:   p.MinStock,
		IsLowStock: p.IsLowStock(),
		Movements:  out,
	}, nil
}

func movementToResponse(m *model.StockMovement) dto.MovementResponse {
	productName := ""
	if m.Product != nil {
		productName = m.Product.Name
	}
	userName := ""
	if m.User != nil {
		userName = m.User.FullName()
	}
	return dto.MovementResponse{
		ID:               m.ID.String(),
		ProductID:        m.ProductID.String(),
		ProductName:      productName,
		MovementType:     m.MovementType,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		UserName:         userName,
		CreatedAt:        m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
