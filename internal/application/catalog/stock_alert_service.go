package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/shared"
)

// StockAlertService handles back-in-stock alert subscriptions
type StockAlertService struct {
	alertRepo   catalog.StockAlertRepository
	productRepo catalog.ProductRepository
}

// NewStockAlertService creates a new StockAlertService
func NewStockAlertService(alertRepo catalog.StockAlertRepository, productRepo catalog.ProductRepository) *StockAlertService {
	return &StockAlertService{
		alertRepo:   alertRepo,
		productRepo: productRepo,
	}
}

// Subscribe registers an email for a back-in-stock notification
// Subscribing is idempotent per product and email
func (s *StockAlertService) Subscribe(ctx context.Context, req SubscribeStockAlertRequest) (*StockAlertResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.IsInStock() {
		return nil, shared.NewDomainError("IN_STOCK", "Product is currently in stock")
	}

	existing, err := s.alertRepo.FindByProductAndEmail(ctx, req.ProductID, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status == catalog.StockAlertStatusPending {
		response := ToStockAlertResponse(existing)
		return &response, nil
	}

	alert, err := catalog.NewStockAlert(req.ProductID, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.alertRepo.Save(ctx, alert); err != nil {
		return nil, err
	}

	response := ToStockAlertResponse(alert)
	return &response, nil
}

// ListPending lists pending alerts for a product
func (s *StockAlertService) ListPending(ctx context.Context, productID uuid.UUID) ([]StockAlertResponse, error) {
	alerts, err := s.alertRepo.FindPendingByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]StockAlertResponse, 0, len(alerts))
	for idx := range alerts {
		responses = append(responses, ToStockAlertResponse(&alerts[idx]))
	}
	return responses, nil
}

// Unsubscribe removes an alert subscription
func (s *StockAlertService) Unsubscribe(ctx context.Context, alertID uuid.UUID) error {
	if _, err := s.alertRepo.FindByID(ctx, alertID); err != nil {
		return err
	}
	return s.alertRepo.Delete(ctx, alertID)
}
