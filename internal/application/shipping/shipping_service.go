package shipping

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shipping"
)

// ShippingService handles shipping zone and carrier service management
type ShippingService struct {
	zoneRepo    shipping.ZoneRepository
	carrierRepo shipping.CarrierServiceRepository
}

// NewShippingService creates a new ShippingService
func NewShippingService(zoneRepo shipping.ZoneRepository, carrierRepo shipping.CarrierServiceRepository) *ShippingService {
	return &ShippingService{
		zoneRepo:    zoneRepo,
		carrierRepo: carrierRepo,
	}
}

// CreateZone creates a shipping zone for a state
func (s *ShippingService) CreateZone(ctx context.Context, req CreateZoneRequest) (*ZoneResponse, error) {
	stateCode := strings.ToUpper(strings.TrimSpace(req.StateCode))
	exists, err := s.zoneRepo.ExistsByState(ctx, stateCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A zone already exists for this state")
	}

	zone, err := shipping.NewShippingZone(stateCode, req.StateName, shipping.ZoneStatus(req.Status))
	if err != nil {
		return nil, err
	}
	if err := s.applyZoneConditions(zone, req.SeasonStart, req.SeasonEnd, req.RequiredService); err != nil {
		return nil, err
	}
	if req.Note != "" {
		zone.SetNote(req.Note)
	}

	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}

	response := ToZoneResponse(zone)
	return &response, nil
}

// GetZone retrieves a zone by ID
func (s *ShippingService) GetZone(ctx context.Context, zoneID uuid.UUID) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	response := ToZoneResponse(zone)
	return &response, nil
}

// ListZones retrieves zones matching the filter
func (s *ShippingService) ListZones(ctx context.Context, filter shared.Filter) (*shared.Paginated[ZoneResponse], error) {
	zones, err := s.zoneRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.zoneRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ZoneResponse, 0, len(zones))
	for idx := range zones {
		responses = append(responses, ToZoneResponse(&zones[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateZone updates a shipping zone
func (s *ShippingService) UpdateZone(ctx context.Context, zoneID uuid.UUID, req UpdateZoneRequest) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := zone.SetStatus(shipping.ZoneStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	seasonStart := string(zone.SeasonStart)
	seasonEnd := string(zone.SeasonEnd)
	requiredService := string(zone.RequiredService)
	if req.SeasonStart != nil {
		seasonStart = *req.SeasonStart
	}
	if req.SeasonEnd != nil {
		seasonEnd = *req.SeasonEnd
	}
	if req.RequiredService != nil {
		requiredService = *req.RequiredService
	}
	if err := s.applyZoneConditions(zone, seasonStart, seasonEnd, requiredService); err != nil {
		return nil, err
	}
	if req.Note != nil {
		zone.SetNote(*req.Note)
	}

	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}

	response := ToZoneResponse(zone)
	return &response, nil
}

// DeleteZone deletes a shipping zone
// States without a zone record default to allowed
func (s *ShippingService) DeleteZone(ctx context.Context, zoneID uuid.UUID) error {
	if _, err := s.zoneRepo.FindByID(ctx, zoneID); err != nil {
		return err
	}
	return s.zoneRepo.Delete(ctx, zoneID)
}

func (s *ShippingService) applyZoneConditions(zone *shipping.ShippingZone, seasonStart, seasonEnd, requiredService string) error {
	if zone.Status != shipping.ZoneConditional {
		return nil
	}
	if seasonStart != "" && seasonEnd != "" {
		if err := zone.SetSeasonalWindow(shipping.MonthDay(seasonStart), shipping.MonthDay(seasonEnd)); err != nil {
			return err
		}
	}
	if requiredService != "" {
		if err := zone.SetRequiredService(shipping.ServiceLevel(requiredService)); err != nil {
			return err
		}
	}
	return nil
}

// EvaluateDestination checks whether shipping to a state is currently possible
// A state without a zone record is shippable
func (s *ShippingService) EvaluateDestination(ctx context.Context, req EvaluateDestinationRequest) (*EvaluateDestinationResponse, error) {
	stateCode := strings.ToUpper(strings.TrimSpace(req.StateCode))
	zone, err := s.zoneRepo.FindByState(ctx, stateCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &EvaluateDestinationResponse{Shippable: true}, nil
		}
		return nil, err
	}

	level := shipping.ServiceLevel(req.ServiceLevel)
	if level == "" {
		level = shipping.ServiceLevelStandard
	}
	if err := zone.Evaluate(time.Now(), level); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return &EvaluateDestinationResponse{
				Shippable: false,
				ErrorCode: domainErr.Code,
				Reason:    domainErr.Message,
				Note:      zone.Note,
			}, nil
		}
		return nil, err
	}
	return &EvaluateDestinationResponse{Shippable: true, Note: zone.Note}, nil
}

// CreateCarrierService creates a carrier service
func (s *ShippingService) CreateCarrierService(ctx context.Context, req CreateCarrierServiceRequest) (*CarrierServiceResponse, error) {
	exists, err := s.carrierRepo.ExistsByCode(ctx, req.ServiceCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A carrier service already exists with this code")
	}

	service, err := shipping.NewCarrierService(req.Carrier, req.ServiceCode, req.ServiceName,
		shipping.ServiceLevel(req.Level), req.MinTransitDays, req.MaxTransitDays)
	if err != nil {
		return nil, err
	}
	if err := service.SetRates(req.BaseRate, req.PerItemRate, req.FreeShippingThreshold); err != nil {
		return nil, err
	}

	if err := s.carrierRepo.Save(ctx, service); err != nil {
		return nil, err
	}

	response := ToCarrierServiceResponse(service)
	return &response, nil
}

// GetCarrierService retrieves a carrier service by ID
func (s *ShippingService) GetCarrierService(ctx context.Context, serviceID uuid.UUID) (*CarrierServiceResponse, error) {
	service, err := s.carrierRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	response := ToCarrierServiceResponse(service)
	return &response, nil
}

// ListCarrierServices retrieves carrier services matching the filter
func (s *ShippingService) ListCarrierServices(ctx context.Context, filter shared.Filter) (*shared.Paginated[CarrierServiceResponse], error) {
	services, err := s.carrierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.carrierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CarrierServiceResponse, 0, len(services))
	for idx := range services {
		responses = append(responses, ToCarrierServiceResponse(&services[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateCarrierService updates a carrier service
func (s *ShippingService) UpdateCarrierService(ctx context.Context, serviceID uuid.UUID, req UpdateCarrierServiceRequest) (*CarrierServiceResponse, error) {
	service, err := s.carrierRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Carrier != nil {
		service.Carrier = *req.Carrier
	}
	if req.ServiceName != nil {
		service.ServiceName = *req.ServiceName
	}
	if req.MinTransitDays != nil || req.MaxTransitDays != nil {
		minDays := service.MinTransitDays
		maxDays := service.MaxTransitDays
		if req.MinTransitDays != nil {
			minDays = *req.MinTransitDays
		}
		if req.MaxTransitDays != nil {
			maxDays = *req.MaxTransitDays
		}
		if err := service.SetTransitDays(minDays, maxDays); err != nil {
			return nil, err
		}
	}
	if req.BaseRate != nil || req.PerItemRate != nil || req.FreeShippingThreshold != nil {
		baseRate := service.BaseRate
		perItemRate := service.PerItemRate
		freeThreshold := service.FreeShippingThreshold
		if req.BaseRate != nil {
			baseRate = *req.BaseRate
		}
		if req.PerItemRate != nil {
			perItemRate = *req.PerItemRate
		}
		if req.FreeShippingThreshold != nil {
			freeThreshold = *req.FreeShippingThreshold
		}
		if err := service.SetRates(baseRate, perItemRate, freeThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.carrierRepo.Save(ctx, service); err != nil {
		return nil, err
	}

	response := ToCarrierServiceResponse(service)
	return &response, nil
}

// ActivateCarrierService enables a carrier service
func (s *ShippingService) ActivateCarrierService(ctx context.Context, serviceID uuid.UUID) error {
	service, err := s.carrierRepo.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}
	service.Activate()
	return s.carrierRepo.Save(ctx, service)
}

// DeactivateCarrierService disables a carrier service
func (s *ShippingService) DeactivateCarrierService(ctx context.Context, serviceID uuid.UUID) error {
	service, err := s.carrierRepo.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}
	service.Deactivate()
	return s.carrierRepo.Save(ctx, service)
}

// DeleteCarrierService deletes a carrier service
func (s *ShippingService) DeleteCarrierService(ctx context.Context, serviceID uuid.UUID) error {
	if _, err := s.carrierRepo.FindByID(ctx, serviceID); err != nil {
		return err
	}
	return s.carrierRepo.Delete(ctx, serviceID)
}

// QuoteRates prices every active carrier service that can serve the destination
// Services below a conditional zone's required level are excluded
func (s *ShippingService) QuoteRates(ctx context.Context, req QuoteRatesRequest) ([]RateQuote, error) {
	stateCode := strings.ToUpper(strings.TrimSpace(req.StateCode))

	var zone *shipping.ShippingZone
	z, err := s.zoneRepo.FindByState(ctx, stateCode)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		zone = z
	}

	services, err := s.carrierRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	quotes := make([]RateQuote, 0, len(services))
	for idx := range services {
		service := &services[idx]
		if zone != nil {
			if err := zone.Evaluate(now, service.Level); err != nil {
				continue
			}
		}
		quotes = append(quotes, RateQuote{
			Service:        ToCarrierServiceResponse(service),
			Rate:           service.RateFor(req.Subtotal, req.ItemCount, req.FreeShipping),
			MinTransitDays: service.MinTransitDays,
			MaxTransitDays: service.MaxTransitDays,
		})
	}

	if len(quotes) == 0 {
		return nil, shared.NewDomainError("NO_SHIPPING_OPTIONS", "No shipping services are available for this destination")
	}
	return quotes, nil
}
