package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/promotion"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PromotionService handles promotion management and discount evaluation
type PromotionService struct {
	promoRepo   promotion.PromotionRepository
	redemptions promotion.RedemptionCounter
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(promoRepo promotion.PromotionRepository, redemptions promotion.RedemptionCounter) *PromotionService {
	return &PromotionService{
		promoRepo:   promoRepo,
		redemptions: redemptions,
	}
}

// Create creates a new promotion
func (s *PromotionService) Create(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error) {
	promo, err := promotion.NewPromotion(req.Name, promotion.PromotionType(req.Type), req.Value)
	if err != nil {
		return nil, err
	}

	promo.Description = req.Description

	if req.Code != "" {
		exists, err := s.promoRepo.ExistsByCode(ctx, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Coupon code already in use")
		}
		if err := promo.SetCode(req.Code); err != nil {
			return nil, err
		}
	}
	if promo.Type == promotion.TypeBuyXGetY {
		if err := promo.SetBuyXGetY(req.BuyQuantity, req.GetQuantity); err != nil {
			return nil, err
		}
	}
	if req.Scope != "" && req.Scope != string(promotion.ScopeAll) {
		if err := promo.SetScope(promotion.PromotionScope(req.Scope), req.ProductIDs, req.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if req.StartsAt != nil || req.EndsAt != nil {
		if err := promo.SetWindow(req.StartsAt, req.EndsAt); err != nil {
			return nil, err
		}
	}
	if err := promo.SetConstraints(req.MinSubtotal, req.UsageLimit, req.PerCustomerLimit); err != nil {
		return nil, err
	}
	if len(req.CustomerIDs) > 0 {
		promo.SetCustomerAllowlist(req.CustomerIDs)
	}
	promo.SetStackable(req.Stackable)

	if err := s.promoRepo.Save(ctx, promo); err != nil {
		return nil, err
	}

	response := ToPromotionResponse(promo)
	return &response, nil
}

// GetByID retrieves a promotion by ID
func (s *PromotionService) GetByID(ctx context.Context, promotionID uuid.UUID) (*PromotionResponse, error) {
	promo, err := s.promoRepo.FindByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	response := ToPromotionResponse(promo)
	return &response, nil
}

// List retrieves promotions matching the filter
func (s *PromotionService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PromotionResponse], error) {
	promos, err := s.promoRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.promoRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PromotionResponse, 0, len(promos))
	for idx := range promos {
		responses = append(responses, ToPromotionResponse(&promos[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a promotion
func (s *PromotionService) Update(ctx context.Context, promotionID uuid.UUID, req UpdatePromotionRequest) (*PromotionResponse, error) {
	promo, err := s.promoRepo.FindByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		promo.Name = *req.Name
	}
	if req.Description != nil {
		promo.Description = *req.Description
	}
	if req.Code != nil && *req.Code != promo.Code {
		if *req.Code != "" {
			exists, err := s.promoRepo.ExistsByCode(ctx, *req.Code)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Coupon code already in use")
			}
		}
		if err := promo.SetCode(*req.Code); err != nil {
			return nil, err
		}
	}
	if req.Scope != nil {
		if err := promo.SetScope(promotion.PromotionScope(*req.Scope), req.ProductIDs, req.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if req.StartsAt != nil || req.EndsAt != nil {
		starts := promo.StartsAt
		ends := promo.EndsAt
		if req.StartsAt != nil {
			starts = req.StartsAt
		}
		if req.EndsAt != nil {
			ends = req.EndsAt
		}
		if err := promo.SetWindow(starts, ends); err != nil {
			return nil, err
		}
	}
	if req.MinSubtotal != nil || req.UsageLimit != nil || req.PerCustomerLimit != nil {
		minSubtotal := promo.MinSubtotal
		usageLimit := promo.UsageLimit
		perCustomer := promo.PerCustomerLimit
		if req.MinSubtotal != nil {
			minSubtotal = *req.MinSubtotal
		}
		if req.UsageLimit != nil {
			usageLimit = *req.UsageLimit
		}
		if req.PerCustomerLimit != nil {
			perCustomer = *req.PerCustomerLimit
		}
		if err := promo.SetConstraints(minSubtotal, usageLimit, perCustomer); err != nil {
			return nil, err
		}
	}
	if req.CustomerIDs != nil {
		promo.SetCustomerAllowlist(req.CustomerIDs)
	}
	if req.Stackable != nil {
		promo.SetStackable(*req.Stackable)
	}

	if err := s.promoRepo.Save(ctx, promo); err != nil {
		return nil, err
	}

	response := ToPromotionResponse(promo)
	return &response, nil
}

// Activate activates a promotion
func (s *PromotionService) Activate(ctx context.Context, promotionID uuid.UUID) error {
	promo, err := s.promoRepo.FindByID(ctx, promotionID)
	if err != nil {
		return err
	}
	promo.Activate()
	return s.promoRepo.Save(ctx, promo)
}

// Deactivate deactivates a promotion
func (s *PromotionService) Deactivate(ctx context.Context, promotionID uuid.UUID) error {
	promo, err := s.promoRepo.FindByID(ctx, promotionID)
	if err != nil {
		return err
	}
	promo.Deactivate()
	return s.promoRepo.Save(ctx, promo)
}

// Delete deletes a promotion
func (s *PromotionService) Delete(ctx context.Context, promotionID uuid.UUID) error {
	if _, err := s.promoRepo.FindByID(ctx, promotionID); err != nil {
		return err
	}
	return s.promoRepo.Delete(ctx, promotionID)
}

// ValidateCoupon checks whether a coupon code can be redeemed
// Invalid coupons return a response with the failure reason, not an error
func (s *PromotionService) ValidateCoupon(ctx context.Context, req ValidateCouponRequest) (*ValidateCouponResponse, error) {
	promo, err := s.promoRepo.FindByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &ValidateCouponResponse{
				Valid:     false,
				ErrorCode: "COUPON_NOT_FOUND",
				Reason:    "Coupon code not found",
			}, nil
		}
		return nil, err
	}

	customerUsage := 0
	if req.CustomerID != nil && s.redemptions != nil {
		customerUsage, err = s.redemptions.CustomerRedemptions(ctx, promo.ID, *req.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	if err := promo.ValidateRedemption(time.Now(), req.Subtotal, req.CustomerID, customerUsage); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return &ValidateCouponResponse{
				Valid:     false,
				ErrorCode: domainErr.Code,
				Reason:    domainErr.Message,
			}, nil
		}
		return nil, err
	}

	response := ToPromotionResponse(promo)
	return &ValidateCouponResponse{Valid: true, Promotion: &response}, nil
}

// CalculateCartDiscount evaluates all applicable promotions against a cart
// Automatic promotions pass the same redemption checks as coupons before they
// participate; a coupon code adds its promotion to the candidate set
func (s *PromotionService) CalculateCartDiscount(ctx context.Context, req CalculateDiscountRequest) (*DiscountResponse, error) {
	lines := ToCartLines(req.Lines)
	now := time.Now()

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount())
	}

	automatic, err := s.promoRepo.FindActiveAutomatic(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]promotion.Promotion, 0, len(automatic))
	for i := range automatic {
		promo := &automatic[i]
		customerUsage := 0
		if req.CustomerID != nil && s.redemptions != nil && promo.PerCustomerLimit > 0 {
			customerUsage, err = s.redemptions.CustomerRedemptions(ctx, promo.ID, *req.CustomerID)
			if err != nil {
				return nil, err
			}
		}
		if promo.ValidateRedemption(now, subtotal, req.CustomerID, customerUsage) != nil {
			continue
		}
		candidates = append(candidates, *promo)
	}

	if req.CouponCode != "" {
		validation, err := s.ValidateCoupon(ctx, ValidateCouponRequest{
			Code:       req.CouponCode,
			Subtotal:   subtotal,
			CustomerID: req.CustomerID,
		})
		if err != nil {
			return nil, err
		}
		if !validation.Valid {
			return nil, shared.NewDomainError(validation.ErrorCode, validation.Reason)
		}

		coupon, err := s.promoRepo.FindByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *coupon)
	}

	result := promotion.CalculateCartDiscount(lines, candidates, now)
	return &DiscountResponse{
		Subtotal:      result.Subtotal,
		DiscountTotal: result.DiscountTotal,
		Total:         result.Total,
		FreeShipping:  result.FreeShipping,
		Applied:       result.Applied,
	}, nil
}

// RecordRedemptions increments usage counters after a successful checkout
func (s *PromotionService) RecordRedemptions(ctx context.Context, promotionIDs []uuid.UUID, customerID *uuid.UUID) error {
	for _, id := range promotionIDs {
		promo, err := s.promoRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		promo.RecordRedemption()
		if err := s.promoRepo.Save(ctx, promo); err != nil {
			return err
		}
		if customerID != nil && s.redemptions != nil {
			if err := s.redemptions.RecordRedemption(ctx, id, *customerID); err != nil {
				return err
			}
		}
	}
	return nil
}
