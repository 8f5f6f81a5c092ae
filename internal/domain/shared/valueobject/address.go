package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Address is a value object representing a US shipping address
// It is immutable - all operations return new Address instances
type Address struct {
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
}

var (
	stateCodePattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	postalCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithLine2 sets the second address line (apartment, suite, etc.)
func WithLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// NewAddress creates a new Address
// Line1, city, state and postal code are required; line2 is optional
func NewAddress(line1, city, state, postalCode string, opts ...AddressOption) (Address, error) {
	line1 = strings.TrimSpace(line1)
	city = strings.TrimSpace(city)
	state = strings.ToUpper(strings.TrimSpace(state))
	postalCode = strings.TrimSpace(postalCode)

	if line1 == "" {
		return Address{}, errors.New("address line cannot be empty")
	}
	if len(line1) > 200 {
		return Address{}, errors.New("address line cannot exceed 200 characters")
	}
	if city == "" {
		return Address{}, errors.New("city cannot be empty")
	}
	if len(city) > 100 {
		return Address{}, errors.New("city cannot exceed 100 characters")
	}
	if !stateCodePattern.MatchString(state) {
		return Address{}, fmt.Errorf("invalid state code: %q", state)
	}
	if !postalCodePattern.MatchString(postalCode) {
		return Address{}, fmt.Errorf("invalid postal code: %q", postalCode)
	}

	addr := Address{
		line1:      line1,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    "US",
	}

	for _, opt := range opts {
		opt(&addr)
	}

	return addr, nil
}

// Line1 returns the first address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the second address line
func (a Address) Line2() string { return a.line2 }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the two-letter state code
func (a Address) State() string { return a.state }

// PostalCode returns the postal code
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country code
func (a Address) Country() string { return a.country }

// IsZero returns true if the address is the zero value
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns a single-line representation of the address
func (a Address) String() string {
	parts := []string{a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	parts = append(parts, fmt.Sprintf("%s, %s %s", a.city, a.state, a.postalCode))
	return strings.Join(parts, ", ")
}

// addressJSON is the JSON representation of Address
type addressJSON struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	var aj addressJSON
	if err := json.Unmarshal(data, &aj); err != nil {
		return err
	}
	addr, err := NewAddress(aj.Line1, aj.City, aj.State, aj.PostalCode, WithLine2(aj.Line2))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage as JSON
func (a Address) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	data, err := a.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 {
		*a = Address{}
		return nil
	}
	return a.UnmarshalJSON(data)
}
