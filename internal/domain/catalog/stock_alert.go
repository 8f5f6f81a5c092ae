package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// StockAlertStatus represents the lifecycle of a back-in-stock subscription
type StockAlertStatus string

const (
	StockAlertStatusPending  StockAlertStatus = "pending"
	StockAlertStatusNotified StockAlertStatus = "notified"
	StockAlertStatusExpired  StockAlertStatus = "expired"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// StockAlert represents a customer's back-in-stock notification subscription
type StockAlert struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_stock_alert_product_email,priority:1"`
	Email      string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_stock_alert_product_email,priority:2"`
	Status     StockAlertStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	NotifiedAt *time.Time
}

// TableName returns the table name for GORM
func (StockAlert) TableName() string {
	return "stock_alerts"
}

// NewStockAlert creates a new back-in-stock subscription
func NewStockAlert(productID uuid.UUID, email string) (*StockAlert, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	return &StockAlert{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Email:             email,
		Status:            StockAlertStatusPending,
	}, nil
}

// MarkNotified records that the notification has been sent
func (a *StockAlert) MarkNotified() error {
	if a.Status != StockAlertStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Alert has already been resolved")
	}

	now := time.Now()
	a.Status = StockAlertStatusNotified
	a.NotifiedAt = &now
	a.Touch()
	a.IncrementVersion()

	return nil
}

// Expire marks the subscription as expired without notification
func (a *StockAlert) Expire() {
	if a.Status != StockAlertStatusPending {
		return
	}
	a.Status = StockAlertStatusExpired
	a.Touch()
	a.IncrementVersion()
}

// IsPending reports whether the alert still awaits notification
func (a *StockAlert) IsPending() bool {
	return a.Status == StockAlertStatusPending
}
