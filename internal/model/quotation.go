package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (d DiscountType) Valid() bool {
	switch d {
	case DiscountNone, DiscountPercentage, DiscountFixed:
		return true
	}
	return false
}

// CostLineItem is one ad hoc extra charge attached to a quotation.
// Items are never persisted on their own, only as an ordered array
// inside the quotation row.
type CostLineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CostLineItems is stored as a JSONB column.
type CostLineItems []CostLineItem

func (c CostLineItems) Value() (driver.Value, error) {
	if c == nil {
		c = CostLineItems{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (c *CostLineItems) Scan(value interface{}) error {
	if value == nil {
		*c = CostLineItems{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cost line items: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, c)
}

// Breakdown is the computed pricing pipeline output. Values carry full
// precision; rounding to two fractional digits happens only at the
// presentation boundary.
type Breakdown struct {
	Area                 decimal.Decimal
	PricePerArea         decimal.Decimal
	NetPrice             decimal.Decimal
	DiscountAmount       decimal.Decimal
	GrossPrice           decimal.Decimal
	VATAmount            decimal.Decimal
	AdditionalCostsTotal decimal.Decimal
	FinalTotal           decimal.Decimal
}

// Quotation is immutable once created. The quotation number is assigned
// by the store exactly once, never by the caller.
type Quotation struct {
	ID              uuid.UUID
	QuotationNumber string

	CustomerName    string
	CustomerEmail   *string
	CustomerPhone   *string
	CustomerAddress *string

	ProductType string
	Width       decimal.Decimal
	Height      decimal.Decimal
	Quantity    int
	Area        decimal.Decimal

	PricePerArea  decimal.Decimal
	NetPrice      decimal.Decimal
	VATPercentage decimal.Decimal
	VATAmount     decimal.Decimal
	GrossPrice    decimal.Decimal

	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal

	AdditionalCosts      CostLineItems `gorm:"type:jsonb"`
	AdditionalCostsTotal decimal.Decimal

	FinalTotal decimal.Decimal

	Notes     *string
	CreatedBy *uuid.UUID
	CreatedAt time.Time
}
