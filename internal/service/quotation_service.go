package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rollquote/quotation-service/internal/calc"
	"github.com/rollquote/quotation-service/internal/config"
	"github.com/rollquote/quotation-service/internal/model"
)

// numberRetries bounds how often a create is retried when the
// millisecond-derived quotation number collides under concurrency.
const numberRetries = 5

type QuotationRepo interface {
	Create(ctx context.Context, quotation model.Quotation) (*model.Quotation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error)
	GetByNumber(ctx context.Context, number string) (*model.Quotation, error)
	ListAll(ctx context.Context) ([]model.Quotation, error)
}

type PDFGenerator interface {
	Generate(quotation model.Quotation) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(quotations []model.Quotation) ([]byte, error)
}

type QuotationService struct {
	quotations QuotationRepo
	prices     PriceRepo
	pdf        PDFGenerator
	excel      ExcelGenerator
	cfg        *config.Config
	log        zerolog.Logger
}

func NewQuotationService(
	quotations QuotationRepo,
	prices PriceRepo,
	pdf PDFGenerator,
	excel ExcelGenerator,
	cfg *config.Config,
	log zerolog.Logger,
) *QuotationService {
	return &QuotationService{
		quotations: quotations,
		prices:     prices,
		pdf:        pdf,
		excel:      excel,
		cfg:        cfg,
		log:        log,
	}
}

type CalculateInput struct {
	ProductType     string
	Width           decimal.Decimal
	Height          decimal.Decimal
	Quantity        int
	VATPercentage   decimal.Decimal
	DiscountType    model.DiscountType
	DiscountValue   decimal.Decimal
	AdditionalCosts []model.CostLineItem
}

// Calculate looks up the authoritative catalog price and runs the
// pricing pipeline. No state is touched, so the UI may call this on
// every field change.
func (s *QuotationService) Calculate(ctx context.Context, in CalculateInput) (*model.Breakdown, error) {
	if strings.TrimSpace(in.ProductType) == "" {
		return nil, fmt.Errorf("%w: product type is required", ErrInvalidInput)
	}

	entry, err := s.prices.GetByType(ctx, in.ProductType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Str("product_type", in.ProductType).Msg("price lookup failed")
		}
		return nil, fmt.Errorf("%w: product type %q", ErrNotFound, in.ProductType)
	}

	breakdown, err := calc.Calculate(calc.Input{
		Width:           in.Width,
		Height:          in.Height,
		Quantity:        in.Quantity,
		PricePerArea:    entry.PricePerArea,
		VATPercentage:   in.VATPercentage,
		DiscountType:    in.DiscountType,
		DiscountValue:   in.DiscountValue,
		AdditionalCosts: in.AdditionalCosts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return breakdown, nil
}

type CreateQuotationInput struct {
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

	DiscountType   model.DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal

	AdditionalCosts      []model.CostLineItem
	AdditionalCostsTotal decimal.Decimal
	FinalTotal           decimal.Decimal

	Notes *string
}

// Create persists a submitted quotation and assigns its number. With
// QUOTES_VERIFY_TOTALS on, the breakdown is recomputed from the catalog
// and the submission is rejected when any figure disagrees at two
// fractional digits; switching the flag off restores the trusting
// behavior of accepting the client's figures verbatim.
func (s *QuotationService) Create(ctx context.Context, in CreateQuotationInput, principal *model.Principal) (*model.Quotation, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ProductType) == "" {
		return nil, fmt.Errorf("%w: product type is required", ErrInvalidInput)
	}
	if !in.DiscountType.Valid() {
		return nil, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, in.DiscountType)
	}

	if s.cfg.Quotes.VerifyTotals {
		if err := s.verifyTotals(ctx, in); err != nil {
			return nil, err
		}
	}

	quotation := model.Quotation{
		CustomerName:         strings.TrimSpace(in.CustomerName),
		CustomerEmail:        in.CustomerEmail,
		CustomerPhone:        in.CustomerPhone,
		CustomerAddress:      in.CustomerAddress,
		ProductType:          in.ProductType,
		Width:                in.Width,
		Height:               in.Height,
		Quantity:             in.Quantity,
		Area:                 in.Area.Round(2),
		PricePerArea:         in.PricePerArea.Round(2),
		NetPrice:             in.NetPrice.Round(2),
		VATPercentage:        in.VATPercentage,
		VATAmount:            in.VATAmount.Round(2),
		GrossPrice:           in.GrossPrice.Round(2),
		DiscountType:         in.DiscountType,
		DiscountValue:        in.DiscountValue,
		DiscountAmount:       in.DiscountAmount.Round(2),
		AdditionalCosts:      model.CostLineItems(in.AdditionalCosts),
		AdditionalCostsTotal: in.AdditionalCostsTotal.Round(2),
		FinalTotal:           in.FinalTotal.Round(2),
		Notes:                in.Notes,
	}
	if principal != nil {
		createdBy := principal.UserID
		quotation.CreatedBy = &createdBy
	}

	for attempt := 0; attempt < numberRetries; attempt++ {
		quotation.QuotationNumber = fmt.Sprintf("%s-%d", s.cfg.Quotes.NumberPrefix, time.Now().UnixMilli())

		saved, err := s.quotations.Create(ctx, quotation)
		if err == nil {
			s.log.Info().Str("quotation_number", saved.QuotationNumber).Msg("quotation created")
			return saved, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			time.Sleep(time.Millisecond)
			continue
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil, fmt.Errorf("%w: could not allocate a unique quotation number", ErrStorageUnavailable)
}

func (s *QuotationService) verifyTotals(ctx context.Context, in CreateQuotationInput) error {
	entry, err := s.prices.GetByType(ctx, in.ProductType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%w: product type %q", ErrNotFound, in.ProductType)
	}

	expected, err := calc.Calculate(calc.Input{
		Width:           in.Width,
		Height:          in.Height,
		Quantity:        in.Quantity,
		PricePerArea:    entry.PricePerArea,
		VATPercentage:   in.VATPercentage,
		DiscountType:    in.DiscountType,
		DiscountValue:   in.DiscountValue,
		AdditionalCosts: in.AdditionalCosts,
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	checks := []struct {
		field     string
		submitted decimal.Decimal
		expected  decimal.Decimal
	}{
		{"area", in.Area, expected.Area},
		{"price_per_area", in.PricePerArea, expected.PricePerArea},
		{"net_price", in.NetPrice, expected.NetPrice},
		{"discount_amount", in.DiscountAmount, expected.DiscountAmount},
		{"gross_price", in.GrossPrice, expected.GrossPrice},
		{"vat_amount", in.VATAmount, expected.VATAmount},
		{"additional_costs_total", in.AdditionalCostsTotal, expected.AdditionalCostsTotal},
		{"final_total", in.FinalTotal, expected.FinalTotal},
	}
	for _, check := range checks {
		if !check.submitted.Round(2).Equal(check.expected.Round(2)) {
			return fmt.Errorf("%w: submitted %s %s does not match computed %s",
				ErrInvalidInput, check.field, check.submitted.StringFixed(2), check.expected.StringFixed(2))
		}
	}
	return nil
}

// List returns all quotations oldest first. Storage failures degrade
// to an empty list for this public read.
func (s *QuotationService) List(ctx context.Context) []model.Quotation {
	quotations, err := s.quotations.ListAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("quotation store unavailable, returning empty list")
		return []model.Quotation{}
	}
	if quotations == nil {
		quotations = []model.Quotation{}
	}
	return quotations
}

func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	quotation, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Str("id", id.String()).Msg("quotation lookup failed")
		}
		return nil, fmt.Errorf("%w: quotation %s", ErrNotFound, id)
	}
	return quotation, nil
}

func (s *QuotationService) GetByNumber(ctx context.Context, number string) (*model.Quotation, error) {
	quotation, err := s.quotations.GetByNumber(ctx, number)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Str("quotation_number", number).Msg("quotation lookup failed")
		}
		return nil, fmt.Errorf("%w: quotation %q", ErrNotFound, number)
	}
	return quotation, nil
}

type Document struct {
	FileName string
	Content  []byte
}

// GeneratePDF renders a stored quotation. Rendering has no side effect
// on the record and may be repeated any number of times.
func (s *QuotationService) GeneratePDF(ctx context.Context, number string) (*Document, error) {
	quotation, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(*quotation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return &Document{
		FileName: fmt.Sprintf("quotation-%s.pdf", quotation.QuotationNumber),
		Content:  content,
	}, nil
}

// ExportExcel produces the admin history export.
func (s *QuotationService) ExportExcel(ctx context.Context, principal *model.Principal) (*Document, error) {
	if principal == nil || !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrPermissionDenied)
	}

	quotations, err := s.quotations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	content, err := s.excel.Generate(quotations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return &Document{
		FileName: fmt.Sprintf("quotations-%s.xlsx", time.Now().Format("20060102")),
		Content:  content,
	}, nil
}
