package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code              string          `json:"code" binding:"required,min=1,max=50"`
	Name              string          `json:"name" binding:"required,min=1,max=200"`
	BotanicalName     string          `json:"botanical_name" binding:"max=200"`
	Description       string          `json:"description" binding:"max=5000"`
	CategoryID        *uuid.UUID      `json:"category_id"`
	PotSize           string          `json:"pot_size" binding:"max=20"`
	CareLevel         string          `json:"care_level" binding:"omitempty,oneof=easy moderate expert"`
	Light             string          `json:"light" binding:"omitempty,oneof=low medium bright full_sun"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	StockQuantity     *int            `json:"stock_quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	Featured          bool            `json:"featured"`
	ImageKey          string          `json:"image_key" binding:"max=255"`
	SortOrder         *int            `json:"sort_order"`
	Attributes        string          `json:"attributes"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	BotanicalName     *string          `json:"botanical_name" binding:"omitempty,max=200"`
	Description       *string          `json:"description" binding:"omitempty,max=5000"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	PotSize           *string          `json:"pot_size" binding:"omitempty,max=20"`
	CareLevel         *string          `json:"care_level" binding:"omitempty,oneof=easy moderate expert"`
	Light             *string          `json:"light" binding:"omitempty,oneof=low medium bright full_sun"`
	Price             *decimal.Decimal `json:"price"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Featured          *bool            `json:"featured"`
	ImageKey          *string          `json:"image_key" binding:"omitempty,max=255"`
	SortOrder         *int             `json:"sort_order"`
	Attributes        *string          `json:"attributes"`
}

// SetSaleRequest configures a product sale
type SetSaleRequest struct {
	SaleType  string          `json:"sale_type" binding:"required,oneof=percentage flat"`
	SaleValue decimal.Decimal `json:"sale_value" binding:"required"`
	StartsAt  *time.Time      `json:"starts_at"`
	EndsAt    *time.Time      `json:"ends_at"`
}

// AdjustStockRequest changes a product's stock level
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"max=255"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	BotanicalName     string          `json:"botanical_name"`
	Description       string          `json:"description"`
	CategoryID        *uuid.UUID      `json:"category_id"`
	PotSize           string          `json:"pot_size"`
	CareLevel         string          `json:"care_level"`
	Light             string          `json:"light"`
	Price             decimal.Decimal `json:"price"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	OnSale            bool            `json:"on_sale"`
	SaleType          string          `json:"sale_type"`
	SaleValue         decimal.Decimal `json:"sale_value"`
	SaleStartsAt      *time.Time      `json:"sale_starts_at,omitempty"`
	SaleEndsAt        *time.Time      `json:"sale_ends_at,omitempty"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	Status            string          `json:"status"`
	Featured          bool            `json:"featured"`
	ImageKey          string          `json:"image_key"`
	SortOrder         int             `json:"sort_order"`
	Attributes        string          `json:"attributes"`
	Purchasable       bool            `json:"purchasable"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive discontinued"`
	CategoryID *uuid.UUID `form:"category_id"`
	Featured   *bool      `form:"featured"`
	OnSale     *bool      `form:"on_sale"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product, at time.Time) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		BotanicalName:     p.BotanicalName,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		PotSize:           p.PotSize,
		CareLevel:         string(p.CareLevel),
		Light:             string(p.Light),
		Price:             p.Price,
		SalePrice:         p.SalePriceAt(at),
		OnSale:            p.SaleActiveAt(at),
		SaleType:          string(p.SaleType),
		SaleValue:         p.SaleValue,
		SaleStartsAt:      p.SaleStartsAt,
		SaleEndsAt:        p.SaleEndsAt,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		Status:            string(p.Status),
		Featured:          p.Featured,
		ImageKey:          p.ImageKey,
		SortOrder:         p.SortOrder,
		Attributes:        p.Attributes,
		Purchasable:       p.IsPurchasable(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Slug        string     `json:"slug" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=2000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string    `json:"slug" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Status      string     `json:"status"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		Status:      string(c.Status),
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SubscribeStockAlertRequest subscribes an email to a back-in-stock alert
type SubscribeStockAlertRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Email     string    `json:"email" binding:"required,email"`
}

// StockAlertResponse represents a stock alert subscription
type StockAlertResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProductID  uuid.UUID  `json:"product_id"`
	Email      string     `json:"email"`
	Status     string     `json:"status"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToStockAlertResponse converts a domain StockAlert to StockAlertResponse
func ToStockAlertResponse(a *catalog.StockAlert) StockAlertResponse {
	return StockAlertResponse{
		ID:         a.ID,
		ProductID:  a.ProductID,
		Email:      a.Email,
		Status:     string(a.Status),
		NotifiedAt: a.NotifiedAt,
		CreatedAt:  a.CreatedAt,
	}
}
