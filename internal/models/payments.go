package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentBreakdown maps a credit card or loan name to the amount due.
// It is stored as a JSON column.
type PaymentBreakdown map[string]int64

// Value implements driver.Valuer for gorm.
func (p PaymentBreakdown) Value() (driver.Value, error) {
	if p == nil {
		p = PaymentBreakdown{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment breakdown: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for gorm.
func (p *PaymentBreakdown) Scan(src interface{}) error {
	if src == nil {
		*p = PaymentBreakdown{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported payment breakdown source type %T", src)
	}
	if len(data) == 0 {
		*p = PaymentBreakdown{}
		return nil
	}
	return json.Unmarshal(data, p)
}

// Total sums every entry in the breakdown.
func (p PaymentBreakdown) Total() int64 {
	var total int64
	for _, amount := range p {
		total += amount
	}
	return total
}
