package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FlashSaleService struct {
	flashSales repositories.FlashSaleRepository
	logger     *logger.Logger
	now        func() time.Time
}

func NewFlashSaleService(flashSales repositories.FlashSaleRepository, log *logger.Logger) *FlashSaleService {
	return &FlashSaleService{
		flashSales: flashSales,
		logger:     log.WithComponent("flashsale_service"),
		now:        time.Now,
	}
}

// ListActive returns the sales currently running; the storefront overlays
// their prices onto the catalog.
func (s *FlashSaleService) ListActive(ctx context.Context) ([]models.FlashSale, error) {
	sales, err := s.flashSales.ListRunning(ctx, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing flash sales")
	}
	return sales, nil
}

func (s *FlashSaleService) List(ctx context.Context) ([]models.FlashSale, error) {
	sales, err := s.flashSales.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing flash sales")
	}
	return sales, nil
}

func (s *FlashSaleService) Get(ctx context.Context, id primitive.ObjectID) (*models.FlashSale, error) {
	sale, err := s.flashSales.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "flash sale not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading flash sale")
	}
	return sale, nil
}

func (s *FlashSaleService) Create(ctx context.Context, sale *models.FlashSale) error {
	if err := validateSale(sale); err != nil {
		return err
	}
	if sale.Status == "" {
		sale.Status = models.FlashSaleActive
	}
	sale.CreatedAt = s.now()
	sale.UpdatedAt = sale.CreatedAt
	if err := s.flashSales.Create(ctx, sale); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "creating flash sale")
	}
	s.logger.WithField("flash_sale_id", sale.ID.Hex()).Info("flash sale created")
	return nil
}

func (s *FlashSaleService) Update(ctx context.Context, id primitive.ObjectID, sale *models.FlashSale) error {
	if err := validateSale(sale); err != nil {
		return err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sale.ID = id
	sale.CreatedAt = existing.CreatedAt
	sale.UpdatedAt = s.now()
	if err := s.flashSales.Update(ctx, id, sale); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "updating flash sale")
	}
	return nil
}

func (s *FlashSaleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.flashSales.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "flash sale not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "deleting flash sale")
	}
	return nil
}

func validateSale(sale *models.FlashSale) error {
	if sale.Name == "" {
		return apperr.New(apperr.CodeInvalidInput, "name is required")
	}
	if !sale.EndDate.After(sale.StartDate) {
		return apperr.New(apperr.CodeInvalidInput, "endDate must be after startDate")
	}
	if len(sale.Products) == 0 && len(sale.Ingredients) == 0 {
		return apperr.New(apperr.CodeInvalidInput, "sale must cover at least one item")
	}
	for _, line := range append(append([]models.FlashSaleLine{}, sale.Products...), sale.Ingredients...) {
		if line.SalePrice <= 0 || line.SalePrice >= line.OriginalPrice {
			return apperr.New(apperr.CodeInvalidInput, "sale price must be positive and below original price")
		}
		if line.Quantity <= 0 {
			return apperr.New(apperr.CodeInvalidInput, "line quantity must be positive")
		}
		if line.SoldQuantity > line.Quantity {
			return apperr.New(apperr.CodeInvalidInput, "soldQuantity cannot exceed quantity")
		}
	}
	return nil
}
