package order

import (
	"fmt"
	"time"
)

// OrderNumberPrefix is the storefront's order number prefix
const OrderNumberPrefix = "VN"

// FormatOrderNumber builds an order number like VN-20260831-0042
// from the order date and a per-day sequence value
func FormatOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%04d", OrderNumberPrefix, date.Format("20060102"), sequence)
}
