package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// CreateZoneRequest represents a request to create a shipping zone
type CreateZoneRequest struct {
	StateCode       string `json:"state_code" binding:"required,statecode"`
	StateName       string `json:"state_name" binding:"required,min=1,max=50"`
	Status          string `json:"status" binding:"required,oneof=allowed blocked conditional"`
	SeasonStart     string `json:"season_start" binding:"omitempty,len=5"`
	SeasonEnd       string `json:"season_end" binding:"omitempty,len=5"`
	RequiredService string `json:"required_service" binding:"omitempty,oneof=standard expedited overnight"`
	Note            string `json:"note" binding:"max=2000"`
}

// UpdateZoneRequest represents a request to update a shipping zone
type UpdateZoneRequest struct {
	Status          *string `json:"status" binding:"omitempty,oneof=allowed blocked conditional"`
	SeasonStart     *string `json:"season_start" binding:"omitempty,len=5"`
	SeasonEnd       *string `json:"season_end" binding:"omitempty,len=5"`
	RequiredService *string `json:"required_service" binding:"omitempty,oneof=standard expedited overnight"`
	Note            *string `json:"note" binding:"omitempty,max=2000"`
}

// ZoneResponse represents a shipping zone in API responses
type ZoneResponse struct {
	ID              uuid.UUID `json:"id"`
	StateCode       string    `json:"state_code"`
	StateName       string    `json:"state_name"`
	Status          string    `json:"status"`
	SeasonStart     string    `json:"season_start,omitempty"`
	SeasonEnd       string    `json:"season_end,omitempty"`
	RequiredService string    `json:"required_service,omitempty"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToZoneResponse converts a domain ShippingZone to ZoneResponse
func ToZoneResponse(z *shipping.ShippingZone) ZoneResponse {
	return ZoneResponse{
		ID:              z.ID,
		StateCode:       z.StateCode,
		StateName:       z.StateName,
		Status:          string(z.Status),
		SeasonStart:     string(z.SeasonStart),
		SeasonEnd:       string(z.SeasonEnd),
		RequiredService: string(z.RequiredService),
		Note:            z.Note,
		CreatedAt:       z.CreatedAt,
		UpdatedAt:       z.UpdatedAt,
	}
}

// CreateCarrierServiceRequest represents a request to create a carrier service
type CreateCarrierServiceRequest struct {
	Carrier               string          `json:"carrier" binding:"required,min=1,max=100"`
	ServiceCode           string          `json:"service_code" binding:"required,min=1,max=50"`
	ServiceName           string          `json:"service_name" binding:"required,min=1,max=100"`
	Level                 string          `json:"level" binding:"required,oneof=standard expedited overnight"`
	MinTransitDays        int             `json:"min_transit_days" binding:"required,min=1"`
	MaxTransitDays        int             `json:"max_transit_days" binding:"required,min=1"`
	BaseRate              decimal.Decimal `json:"base_rate"`
	PerItemRate           decimal.Decimal `json:"per_item_rate"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
}

// UpdateCarrierServiceRequest represents a request to update a carrier service
type UpdateCarrierServiceRequest struct {
	Carrier               *string          `json:"carrier" binding:"omitempty,min=1,max=100"`
	ServiceName           *string          `json:"service_name" binding:"omitempty,min=1,max=100"`
	MinTransitDays        *int             `json:"min_transit_days" binding:"omitempty,min=1"`
	MaxTransitDays        *int             `json:"max_transit_days" binding:"omitempty,min=1"`
	BaseRate              *decimal.Decimal `json:"base_rate"`
	PerItemRate           *decimal.Decimal `json:"per_item_rate"`
	FreeShippingThreshold *decimal.Decimal `json:"free_shipping_threshold"`
}

// CarrierServiceResponse represents a carrier service in API responses
type CarrierServiceResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Carrier               string          `json:"carrier"`
	ServiceCode           string          `json:"service_code"`
	ServiceName           string          `json:"service_name"`
	Level                 string          `json:"level"`
	MinTransitDays        int             `json:"min_transit_days"`
	MaxTransitDays        int             `json:"max_transit_days"`
	BaseRate              decimal.Decimal `json:"base_rate"`
	PerItemRate           decimal.Decimal `json:"per_item_rate"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
	Active                bool            `json:"active"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ToCarrierServiceResponse converts a domain CarrierService to CarrierServiceResponse
func ToCarrierServiceResponse(s *shipping.CarrierService) CarrierServiceResponse {
	return CarrierServiceResponse{
		ID:                    s.ID,
		Carrier:               s.Carrier,
		ServiceCode:           s.ServiceCode,
		ServiceName:           s.ServiceName,
		Level:                 string(s.Level),
		MinTransitDays:        s.MinTransitDays,
		MaxTransitDays:        s.MaxTransitDays,
		BaseRate:              s.BaseRate,
		PerItemRate:           s.PerItemRate,
		FreeShippingThreshold: s.FreeShippingThreshold,
		Active:                s.Active,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// EvaluateDestinationRequest asks whether shipping to a state is possible
type EvaluateDestinationRequest struct {
	StateCode    string `json:"state_code" binding:"required,statecode"`
	ServiceLevel string `json:"service_level" binding:"omitempty,oneof=standard expedited overnight"`
}

// EvaluateDestinationResponse reports shipping eligibility for a state
type EvaluateDestinationResponse struct {
	Shippable bool   `json:"shippable"`
	ErrorCode string `json:"error_code,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Note      string `json:"note,omitempty"`
}

// QuoteRatesRequest asks for shipping rates on a cart
type QuoteRatesRequest struct {
	StateCode    string          `json:"state_code" binding:"required,statecode"`
	Subtotal     decimal.Decimal `json:"subtotal" binding:"required"`
	ItemCount    int             `json:"item_count" binding:"required,min=1"`
	FreeShipping bool            `json:"free_shipping"`
}

// RateQuote is one priced shipping option
type RateQuote struct {
	Service        CarrierServiceResponse `json:"service"`
	Rate           decimal.Decimal        `json:"rate"`
	MinTransitDays int                    `json:"min_transit_days"`
	MaxTransitDays int                    `json:"max_transit_days"`
}
