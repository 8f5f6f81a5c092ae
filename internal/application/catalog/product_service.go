package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Code, req.Name, valueobject.NewMoneyUSD(req.Price))
	if err != nil {
		return nil, err
	}

	if req.BotanicalName != "" || req.Description != "" {
		if err := product.Update(req.Name, req.BotanicalName, req.Description); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.PotSize != "" {
		if err := product.SetPotSize(req.PotSize); err != nil {
			return nil, err
		}
	}
	if req.CareLevel != "" || req.Light != "" {
		care := product.CareLevel
		light := product.Light
		if req.CareLevel != "" {
			care = catalog.CareLevel(req.CareLevel)
		}
		if req.Light != "" {
			light = catalog.LightRequirement(req.Light)
		}
		if err := product.SetCareProfile(care, light); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if req.Featured {
		product.SetFeatured(true)
	}
	if req.ImageKey != "" {
		if err := product.SetImageKey(req.ImageKey); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}
	if req.Attributes != "" {
		if err := product.SetAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// GetByCode retrieves a product by its code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case filter.CategoryID != nil:
		products, err = s.productRepo.FindByCategory(ctx, *filter.CategoryID, domainFilter)
	case filter.Status != "":
		products, err = s.productRepo.FindByStatus(ctx, catalog.ProductStatus(filter.Status), domainFilter)
	default:
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		p := products[idx]
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		if filter.OnSale != nil && p.SaleActiveAt(now) != *filter.OnSale {
			continue
		}
		responses = append(responses, ToProductResponse(&p, now))
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListFeatured retrieves featured storefront products
func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]ProductResponse, error) {
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx], now))
	}
	return responses, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	botanical := product.BotanicalName
	description := product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.BotanicalName != nil {
		botanical = *req.BotanicalName
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, botanical, description); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.PotSize != nil {
		if err := product.SetPotSize(*req.PotSize); err != nil {
			return nil, err
		}
	}
	if req.CareLevel != nil || req.Light != nil {
		care := product.CareLevel
		light := product.Light
		if req.CareLevel != nil {
			care = catalog.CareLevel(*req.CareLevel)
		}
		if req.Light != nil {
			light = catalog.LightRequirement(*req.Light)
		}
		if err := product.SetCareProfile(care, light); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}
	if req.ImageKey != nil {
		if err := product.SetImageKey(*req.ImageKey); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}
	if req.Attributes != nil {
		if err := product.SetAttributes(*req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// SetSale configures a sale on a product
func (s *ProductService) SetSale(ctx context.Context, productID uuid.UUID, req SetSaleRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetSale(catalog.SaleType(req.SaleType), req.SaleValue, req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// ClearSale removes the sale from a product
func (s *ProductService) ClearSale(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.ClearSale()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// AdjustStock replenishes or sets product stock
// Positive quantities replenish, absolute set uses SetStock via quantity < current handling
func (s *ProductService) AdjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Quantity >= 0 {
		if err := product.Replenish(req.Quantity); err != nil {
			return nil, err
		}
	} else {
		if err := product.DecrementStock(-req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// SetStock sets the absolute stock level
func (s *ProductService) SetStock(ctx context.Context, productID uuid.UUID, quantity int) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetStock(quantity); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// Activate activates a product
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) error {
	return s.transition(ctx, productID, (*catalog.Product).Activate)
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) error {
	return s.transition(ctx, productID, (*catalog.Product).Deactivate)
}

// Discontinue permanently discontinues a product
func (s *ProductService) Discontinue(ctx context.Context, productID uuid.UUID) error {
	return s.transition(ctx, productID, (*catalog.Product).Discontinue)
}

func (s *ProductService) transition(ctx context.Context, productID uuid.UUID, op func(*catalog.Product) error) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := op(product); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	s.publishEvents(ctx, product)
	return nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		// Event handling is async; failures must not roll back the save
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}
