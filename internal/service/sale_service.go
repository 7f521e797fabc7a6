package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/infra"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest, employeeID *uuid.UUID) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Dashboard(ctx context.Context) (*dto.SalesDashboardResponse, error)
	DailyReport(ctx context.Context, day time.Time) (*dto.DailyReportResponse, error)
	Ticket(ctx context.Context, id uuid.UUID) (string, error)
}

type saleService struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	inventory InventoryService
	cfg       *config.Config
	log       zerolog.Logger
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	inventory InventoryService,
	cfg *config.Config,
	log zerolog.Logger,
) SaleService {
	return &saleService{
		sales:     sales,
		products:  products,
		customers: customers,
		inventory: inventory,
		cfg:       cfg,
		log:       log,
	}
}

// Create registers a sale atomically: sale number, stock deductions, line
// items and totals all commit together or not at all. With the ledger flag on
// (the default) each line's deduction lands in the stock ledger as an "out"
// movement carrying the sale number; with it off the quantity is decremented
// directly without an audit row.
func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest, employeeID *uuid.UUID) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, &apierror.InvalidOperationError{Reason: "La venta no tiene items"}
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, err
		}
		if _, err := s.customers.FindByID(ctx, id); err != nil {
			return nil, translateNotFound(err, "Cliente")
		}
		customerID = &id
	}

	sale := &model.Sale{
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		EmployeeID:    employeeID,
		Notes:         req.Notes,
	}

	err := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		number, err := s.sales.NextSaleNumber(tx)
		if err != nil {
			return err
		}
		sale.SaleNumber = number

		subtotal := decimal.Zero
		for _, item := range req.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return err
			}

			product, err := s.deductStock(tx, productID, item.Quantity, number, employeeID)
			if err != nil {
				return err
			}

			// List price unless the counter negotiated one for this line.
			price := product.SalePrice
			if item.UnitPrice != nil {
				price = *item.UnitPrice
			}
			lineTotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: productID,
				Quantity:  item.Quantity,
				UnitPrice: price,
				Subtotal:  lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		if req.Discount.GreaterThan(subtotal) {
			return &apierror.InvalidOperationError{Reason: "El descuento excede el subtotal"}
		}
		sale.Subtotal = subtotal
		sale.Total = subtotal.Sub(req.Discount)

		if sale.PaymentMethod == model.PaymentAccount {
			sale.PaidAmount = req.PaidAmount
			sale.Balance, sale.PaymentStatus = model.ComputePaymentStatus(sale.Total, sale.PaidAmount)
		} else {
			// Immediate payment methods settle in full at the counter.
			sale.PaidAmount = sale.Total
			sale.Balance = decimal.Zero
			sale.PaymentStatus = model.PaymentStatusPaid
		}

		return s.sales.CreateTx(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("sale_number", sale.SaleNumber).
		Str("total", sale.Total.String()).
		Str("payment_method", sale.PaymentMethod).
		Int("items", len(sale.Items)).
		Msg("sale registered")

	return s.Get(ctx, sale.ID)
}

func (s *saleService) deductStock(tx *gorm.DB, productID uuid.UUID, quantity int, saleNumber string, employeeID *uuid.UUID) (*model.Product, error) {
	if s.cfg.SaleLedgerMovements {
		movement, err := s.inventory.ApplyMovementTx(tx, productID, model.MovementOut, quantity, "Venta "+saleNumber, employeeID)
		if err != nil {
			return nil, err
		}
		return movement.Product, nil
	}

	product, err := s.products.FindByIDForUpdate(tx, productID)
	if err != nil {
		return nil, translateNotFound(err, "Producto")
	}
	if quantity > product.Quantity {
		return nil, &apierror.InsufficientStockError{
			Product:   product.Name,
			Available: product.Quantity,
			Requested: quantity,
		}
	}
	if err := s.products.UpdateQuantityTx(tx, productID, product.Quantity-quantity); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Venta")
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleListItem, 0, len(sales))
	for i := range sales {
		out = append(out, saleToListItem(&sales[i]))
	}
	return &dto.SaleListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *saleService) Dashboard(ctx context.Context) (*dto.SalesDashboardResponse, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	tomorrow := dayStart.AddDate(0, 0, 1)

	todayCount, todayTotal, err := s.sales.TotalsForRange(ctx, dayStart, tomorrow)
	if err != nil {
		return nil, err
	}
	monthCount, monthTotal, err := s.sales.TotalsForRange(ctx, monthStart, tomorrow)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.sales.TopProducts(ctx, monthStart, 5)
	if err != nil {
		return nil, err
	}
	methods, err := s.sales.TotalsByPaymentMethod(ctx, monthStart, tomorrow)
	if err != nil {
		return nil, err
	}

	return &dto.SalesDashboardResponse{
		SalesToday:     dto.SalesPeriodStats{Count: todayCount, Total: todayTotal},
		SalesMonth:     dto.SalesPeriodStats{Count: monthCount, Total: monthTotal},
		TopProducts:    topProducts,
		PaymentMethods: methods,
	}, nil
}

// DailyReport is the end-of-day cash register close.
func (s *saleService) DailyReport(ctx context.Context, day time.Time) (*dto.DailyReportResponse, error) {
	sales, err := s.sales.ListForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	methods, err := s.sales.TotalsByPaymentMethod(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]dto.SaleListItem, 0, len(sales))
	for i := range sales {
		total = total.Add(sales[i].Total)
		items = append(items, saleToListItem(&sales[i]))
	}

	return &dto.DailyReportResponse{
		Date:            day.Format("2006-01-02"),
		TotalSales:      int64(len(sales)),
		TotalAmount:     total,
		ByPaymentMethod: methods,
		Sales:           items,
	}, nil
}

func (s *saleService) Ticket(ctx context.Context, id uuid.UUID) (string, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return "", translateNotFound(err, "Venta")
	}
	return infra.GenerateSaleTicketPDF(sale, s.cfg.BusinessName, s.cfg.PDFStoragePath)
}

func saleToResponse(sale *model.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:              sale.ID.String(),
		SaleNumber:      sale.SaleNumber,
		Date:            sale.Date.Format("2006-01-02T15:04:05Z07:00"),
		CustomerDisplay: sale.CustomerDisplay(),
		Subtotal:        sale.Subtotal,
		Discount:        sale.Discount,
		Total:           sale.Total,
		PaymentMethod:   sale.PaymentMethod,
		PaymentStatus:   sale.PaymentStatus,
		PaidAmount:      sale.PaidAmount,
		Balance:         sale.Balance,
		Notes:           sale.Notes,
	}
	if sale.CustomerID != nil {
		id := sale.CustomerID.String()
		resp.CustomerID = &id
	}
	if sale.Employee != nil {
		resp.EmployeeName = sale.Employee.FullName()
	}
	for i := range sale.Items {
		item := &sale.Items[i]
		line := dto.SaleItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ProductSKU = item.Product.SKU
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}

func saleToListItem(sale *model.Sale) dto.SaleListItem {
	item := dto.SaleListItem{
		ID:              sale.ID.String(),
		SaleNumber:      sale.SaleNumber,
		Date:            sale.Date.Format("2006-01-02T15:04:05Z07:00"),
		CustomerDisplay: sale.CustomerDisplay(),
		Total:           sale.Total,
		PaymentMethod:   sale.PaymentMethod,
		ItemsCount:      len(sale.Items),
	}
	if sale.Employee != nil {
		item.EmployeeName = sale.Employee.FullName()
	}
	return item
}
