package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is the pricing view of a cart item used for discount calculation
type CartLine struct {
	ProductID  uuid.UUID
	CategoryID *uuid.UUID
	Quantity   int
	UnitPrice  decimal.Decimal
}

// Amount returns the line total before discounts
func (l CartLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AppliedPromotion describes a promotion applied to a cart
type AppliedPromotion struct {
	PromotionID  uuid.UUID       `json:"promotion_id"`
	Name         string          `json:"name"`
	Code         string          `json:"code,omitempty"`
	Type         PromotionType   `json:"type"`
	Discount     decimal.Decimal `json:"discount"`
	FreeShipping bool            `json:"free_shipping"`
}

// DiscountResult is the outcome of evaluating promotions against a cart
type DiscountResult struct {
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	Total         decimal.Decimal    `json:"total"`
	FreeShipping  bool               `json:"free_shipping"`
	Applied       []AppliedPromotion `json:"applied"`
}

// AppliesToLine reports whether the promotion's scope covers the cart line
func (p *Promotion) AppliesToLine(line CartLine) bool {
	switch p.Scope {
	case ScopeProducts:
		return p.ProductIDs.Contains(line.ProductID)
	case ScopeCategories:
		return line.CategoryID != nil && p.CategoryIDs.Contains(*line.CategoryID)
	default:
		return true
	}
}

// EligibleSubtotal sums the amounts of all lines the promotion covers
func (p *Promotion) EligibleSubtotal(lines []CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		if p.AppliesToLine(line) {
			subtotal = subtotal.Add(line.Amount())
		}
	}
	return subtotal
}

// DiscountFor computes the discount amount this promotion grants for the
// given cart lines. Free-shipping promotions return a zero line discount;
// the free-shipping effect is surfaced through the result flag.
func (p *Promotion) DiscountFor(lines []CartLine) decimal.Decimal {
	switch p.Type {
	case TypePercentage:
		eligible := p.EligibleSubtotal(lines)
		return eligible.Mul(p.Value).Div(decimal.NewFromInt(100)).Round(2)

	case TypeFixedAmount:
		eligible := p.EligibleSubtotal(lines)
		if eligible.LessThan(p.Value) {
			return eligible
		}
		return p.Value

	case TypeBuyXGetY:
		if p.BuyQuantity <= 0 || p.GetQuantity <= 0 {
			return decimal.Zero
		}
		group := p.BuyQuantity + p.GetQuantity
		discount := decimal.Zero
		for _, line := range lines {
			if !p.AppliesToLine(line) {
				continue
			}
			freeUnits := line.Quantity / group * p.GetQuantity
			if freeUnits > 0 {
				discount = discount.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(freeUnits))))
			}
		}
		return discount.Round(2)

	default:
		return decimal.Zero
	}
}

// CalculateCartDiscount evaluates a set of candidate promotions against cart
// lines and returns the resulting discounts.
//
// Stacking rules: all applicable stackable promotions combine; non-stackable
// promotions compete, and the single best non-stackable promotion wins over
// the stackable combination only when it grants a larger discount. The total
// discount never exceeds the cart subtotal.
func CalculateCartDiscount(lines []CartLine, candidates []Promotion, at time.Time) DiscountResult {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount())
	}

	result := DiscountResult{
		Subtotal:      subtotal,
		DiscountTotal: decimal.Zero,
		Total:         subtotal,
	}
	if len(lines) == 0 {
		return result
	}

	type evaluated struct {
		promo        *Promotion
		discount     decimal.Decimal
		freeShipping bool
	}

	var stackable []evaluated
	var bestSingle *evaluated

	for i := range candidates {
		promo := &candidates[i]
		if !promo.Active || !promo.IsWithinWindow(at) {
			continue
		}
		if subtotal.LessThan(promo.MinSubtotal) {
			continue
		}

		discount := promo.DiscountFor(lines)
		freeShipping := promo.Type == TypeFreeShipping
		if discount.IsZero() && !freeShipping {
			continue
		}

		ev := evaluated{promo: promo, discount: discount, freeShipping: freeShipping}
		if promo.Stackable {
			stackable = append(stackable, ev)
		} else if bestSingle == nil || discount.GreaterThan(bestSingle.discount) {
			bestSingle = &ev
		}
	}

	var chosen []evaluated
	stackTotal := decimal.Zero
	for _, ev := range stackable {
		stackTotal = stackTotal.Add(ev.discount)
	}

	// A free-shipping winner carries a zero line discount, so it also wins
	// when nothing grants a larger discount.
	wins := bestSingle != nil && (bestSingle.discount.GreaterThan(stackTotal) ||
		(bestSingle.freeShipping && stackTotal.IsZero() && len(stackable) == 0))
	if wins {
		chosen = []evaluated{*bestSingle}
	} else {
		chosen = stackable
	}

	for _, ev := range chosen {
		result.Applied = append(result.Applied, AppliedPromotion{
			PromotionID:  ev.promo.ID,
			Name:         ev.promo.Name,
			Code:         ev.promo.Code,
			Type:         ev.promo.Type,
			Discount:     ev.discount,
			FreeShipping: ev.freeShipping,
		})
		result.DiscountTotal = result.DiscountTotal.Add(ev.discount)
		if ev.freeShipping {
			result.FreeShipping = true
		}
	}

	if result.DiscountTotal.GreaterThan(subtotal) {
		result.DiscountTotal = subtotal
	}
	result.Total = subtotal.Sub(result.DiscountTotal)

	return result
}
