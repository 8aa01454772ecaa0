// Package calc implements the quotation pricing pipeline. The pipeline
// order is fixed: VAT applies after the discount, additional costs are
// added after VAT.
package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rollquote/quotation-service/internal/model"
)

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

type Input struct {
	Width           decimal.Decimal
	Height          decimal.Decimal
	Quantity        int
	PricePerArea    decimal.Decimal
	VATPercentage   decimal.Decimal
	DiscountType    model.DiscountType
	DiscountValue   decimal.Decimal
	AdditionalCosts []model.CostLineItem
}

func (in Input) validate() error {
	if !in.Width.IsPositive() {
		return errors.New("width must be greater than zero")
	}
	if !in.Height.IsPositive() {
		return errors.New("height must be greater than zero")
	}
	if in.Quantity < 1 {
		return errors.New("quantity must be a positive integer")
	}
	if in.PricePerArea.IsNegative() {
		return errors.New("price per area must not be negative")
	}
	if in.VATPercentage.IsNegative() || in.VATPercentage.GreaterThan(hundred) {
		return errors.New("vat percentage must be between 0 and 100")
	}
	if !in.DiscountType.Valid() {
		return fmt.Errorf("unknown discount type %q", in.DiscountType)
	}
	if in.DiscountValue.IsNegative() {
		return errors.New("discount value must not be negative")
	}
	for _, cost := range in.AdditionalCosts {
		if cost.Label == "" {
			return errors.New("additional cost label is required")
		}
	}
	return nil
}

// Calculate runs the full pipeline and returns the itemized breakdown.
// It is pure and deterministic, so callers may re-run it on every input
// change. Width and height are centimeters, area is square meters.
func Calculate(in Input) (*model.Breakdown, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	area := in.Width.Mul(in.Height).Div(tenThousand)
	netPrice := area.Mul(in.PricePerArea).Mul(decimal.NewFromInt(int64(in.Quantity)))

	discountAmount := decimal.Zero
	switch in.DiscountType {
	case model.DiscountPercentage:
		discountAmount = netPrice.Mul(in.DiscountValue).Div(hundred)
	case model.DiscountFixed:
		discountAmount = in.DiscountValue
	}

	grossPrice := netPrice.Sub(discountAmount)
	vatAmount := grossPrice.Mul(in.VATPercentage).Div(hundred)

	additionalCostsTotal := decimal.Zero
	for _, cost := range in.AdditionalCosts {
		additionalCostsTotal = additionalCostsTotal.Add(cost.Amount)
	}

	finalTotal := grossPrice.Add(vatAmount).Add(additionalCostsTotal)

	return &model.Breakdown{
		Area:                 area,
		PricePerArea:         in.PricePerArea,
		NetPrice:             netPrice,
		DiscountAmount:       discountAmount,
		GrossPrice:           grossPrice,
		VATAmount:            vatAmount,
		AdditionalCostsTotal: additionalCostsTotal,
		FinalTotal:           finalTotal,
	}, nil
}
