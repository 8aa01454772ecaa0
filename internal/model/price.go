package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceEntry holds the current price per square meter for one product
// type. Entries are seeded at setup and mutated only through the admin
// price update; they are never deleted.
type PriceEntry struct {
	ID           uuid.UUID
	ProductType  string
	PricePerArea decimal.Decimal
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
