package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rollquote/quotation-service/internal/model"
	"github.com/rollquote/quotation-service/internal/service"
)

type costLineItemPayload struct {
	Label  string          `json:"label" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

func toCostLineItems(payload []costLineItemPayload) []model.CostLineItem {
	items := make([]model.CostLineItem, 0, len(payload))
	for _, p := range payload {
		items = append(items, model.CostLineItem{Label: p.Label, Amount: p.Amount})
	}
	return items
}

type priceResponse struct {
	ProductType  string  `json:"product_type"`
	PricePerArea string  `json:"price_per_area"`
	Description  *string `json:"description,omitempty"`
	UpdatedAt    string  `json:"updated_at"`
}

func toPriceResponse(entry model.PriceEntry) priceResponse {
	return priceResponse{
		ProductType:  entry.ProductType,
		PricePerArea: entry.PricePerArea.StringFixed(2),
		Description:  entry.Description,
		UpdatedAt:    entry.UpdatedAt.Format(time.RFC3339),
	}
}

type calculateRequest struct {
	ProductType     string                `json:"product_type" binding:"required"`
	Width           decimal.Decimal       `json:"width" binding:"required"`
	Height          decimal.Decimal       `json:"height" binding:"required"`
	Quantity        int                   `json:"quantity" binding:"required"`
	VATPercentage   decimal.Decimal       `json:"vat_percentage"`
	DiscountType    string                `json:"discount_type"`
	DiscountValue   decimal.Decimal       `json:"discount_value"`
	AdditionalCosts []costLineItemPayload `json:"additional_costs"`
}

func (r calculateRequest) toInput() service.CalculateInput {
	discountType := model.DiscountType(r.DiscountType)
	if r.DiscountType == "" {
		discountType = model.DiscountNone
	}
	return service.CalculateInput{
		ProductType:     r.ProductType,
		Width:           r.Width,
		Height:          r.Height,
		Quantity:        r.Quantity,
		VATPercentage:   r.VATPercentage,
		DiscountType:    discountType,
		DiscountValue:   r.DiscountValue,
		AdditionalCosts: toCostLineItems(r.AdditionalCosts),
	}
}

// All monetary figures leave the API as strings with two fractional
// digits; full precision stays internal.
type breakdownResponse struct {
	Area                 string `json:"area"`
	PricePerArea         string `json:"price_per_area"`
	NetPrice             string `json:"net_price"`
	DiscountAmount       string `json:"discount_amount"`
	GrossPrice           string `json:"gross_price"`
	VATAmount            string `json:"vat_amount"`
	AdditionalCostsTotal string `json:"additional_costs_total"`
	FinalTotal           string `json:"final_total"`
}

func toBreakdownResponse(b model.Breakdown) breakdownResponse {
	return breakdownResponse{
		Area:                 b.Area.StringFixed(2),
		PricePerArea:         b.PricePerArea.StringFixed(2),
		NetPrice:             b.NetPrice.StringFixed(2),
		DiscountAmount:       b.DiscountAmount.StringFixed(2),
		GrossPrice:           b.GrossPrice.StringFixed(2),
		VATAmount:            b.VATAmount.StringFixed(2),
		AdditionalCostsTotal: b.AdditionalCostsTotal.StringFixed(2),
		FinalTotal:           b.FinalTotal.StringFixed(2),
	}
}

type createQuotationRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerAddress *string `json:"customer_address"`

	ProductType string          `json:"product_type" binding:"required"`
	Width       decimal.Decimal `json:"width" binding:"required"`
	Height      decimal.Decimal `json:"height" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required"`
	Area        decimal.Decimal `json:"area" binding:"required"`

	PricePerArea  decimal.Decimal `json:"price_per_area" binding:"required"`
	NetPrice      decimal.Decimal `json:"net_price"`
	VATPercentage decimal.Decimal `json:"vat_percentage"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	GrossPrice    decimal.Decimal `json:"gross_price"`

	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	AdditionalCosts      []costLineItemPayload `json:"additional_costs"`
	AdditionalCostsTotal decimal.Decimal       `json:"additional_costs_total"`
	FinalTotal           decimal.Decimal       `json:"final_total"`

	Notes *string `json:"notes"`
}

func (r createQuotationRequest) toInput() service.CreateQuotationInput {
	discountType := model.DiscountType(r.DiscountType)
	if r.DiscountType == "" {
		discountType = model.DiscountNone
	}
	return service.CreateQuotationInput{
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		CustomerAddress:      r.CustomerAddress,
		ProductType:          r.ProductType,
		Width:                r.Width,
		Height:               r.Height,
		Quantity:             r.Quantity,
		Area:                 r.Area,
		PricePerArea:         r.PricePerArea,
		NetPrice:             r.NetPrice,
		VATPercentage:        r.VATPercentage,
		VATAmount:            r.VATAmount,
		GrossPrice:           r.GrossPrice,
		DiscountType:         discountType,
		DiscountValue:        r.DiscountValue,
		DiscountAmount:       r.DiscountAmount,
		AdditionalCosts:      toCostLineItems(r.AdditionalCosts),
		AdditionalCostsTotal: r.AdditionalCostsTotal,
		FinalTotal:           r.FinalTotal,
		Notes:                r.Notes,
	}
}

type costLineItemResponse struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type quotationResponse struct {
	ID              string  `json:"id"`
	QuotationNumber string  `json:"quotation_number"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   *string `json:"customer_email,omitempty"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	CustomerAddress *string `json:"customer_address,omitempty"`

	ProductType string `json:"product_type"`
	Width       string `json:"width"`
	Height      string `json:"height"`
	Quantity    int    `json:"quantity"`
	Area        string `json:"area"`

	PricePerArea  string `json:"price_per_area"`
	NetPrice      string `json:"net_price"`
	VATPercentage string `json:"vat_percentage"`
	VATAmount     string `json:"vat_amount"`
	GrossPrice    string `json:"gross_price"`

	DiscountType   string `json:"discount_type"`
	DiscountValue  string `json:"discount_value"`
	DiscountAmount string `json:"discount_amount"`

	AdditionalCosts      []costLineItemResponse `json:"additional_costs"`
	AdditionalCostsTotal string                 `json:"additional_costs_total"`
	FinalTotal           string                 `json:"final_total"`

	Notes     *string `json:"notes,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func toQuotationResponse(q model.Quotation) quotationResponse {
	costs := make([]costLineItemResponse, 0, len(q.AdditionalCosts))
	for _, cost := range q.AdditionalCosts {
		costs = append(costs, costLineItemResponse{
			Label:  cost.Label,
			Amount: cost.Amount.StringFixed(2),
		})
	}

	var createdBy *string
	if q.CreatedBy != nil {
		id := q.CreatedBy.String()
		createdBy = &id
	}

	return quotationResponse{
		ID:                   q.ID.String(),
		QuotationNumber:      q.QuotationNumber,
		CustomerName:         q.CustomerName,
		CustomerEmail:        q.CustomerEmail,
		CustomerPhone:        q.CustomerPhone,
		CustomerAddress:      q.CustomerAddress,
		ProductType:          q.ProductType,
		Width:                q.Width.StringFixed(2),
		Height:               q.Height.StringFixed(2),
		Quantity:             q.Quantity,
		Area:                 q.Area.StringFixed(2),
		PricePerArea:         q.PricePerArea.StringFixed(2),
		NetPrice:             q.NetPrice.StringFixed(2),
		VATPercentage:        q.VATPercentage.StringFixed(2),
		VATAmount:            q.VATAmount.StringFixed(2),
		GrossPrice:           q.GrossPrice.StringFixed(2),
		DiscountType:         string(q.DiscountType),
		DiscountValue:        q.DiscountValue.StringFixed(2),
		DiscountAmount:       q.DiscountAmount.StringFixed(2),
		AdditionalCosts:      costs,
		AdditionalCostsTotal: q.AdditionalCostsTotal.StringFixed(2),
		FinalTotal:           q.FinalTotal.StringFixed(2),
		Notes:                q.Notes,
		CreatedBy:            createdBy,
		CreatedAt:            q.CreatedAt.Format(time.RFC3339),
	}
}
