package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rollquote/quotation-service/internal/model"
)

type PriceRepo interface {
	List(ctx context.Context) ([]model.PriceEntry, error)
	GetByType(ctx context.Context, productType string) (*model.PriceEntry, error)
	UpdatePrice(ctx context.Context, productType string, price decimal.Decimal) error
}

type PriceService struct {
	repo PriceRepo
	log  zerolog.Logger
}

func NewPriceService(repo PriceRepo, log zerolog.Logger) *PriceService {
	return &PriceService{repo: repo, log: log}
}

// ListPrices returns the catalog. An unreachable store degrades to an
// empty list so public reads keep working.
func (s *PriceService) ListPrices(ctx context.Context) []model.PriceEntry {
	entries, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("price catalog unavailable, returning empty list")
		return []model.PriceEntry{}
	}
	if entries == nil {
		entries = []model.PriceEntry{}
	}
	return entries
}

func (s *PriceService) GetPrice(ctx context.Context, productType string) (*model.PriceEntry, error) {
	entry, err := s.repo.GetByType(ctx, productType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Str("product_type", productType).Msg("price lookup failed")
		}
		return nil, fmt.Errorf("%w: product type %q", ErrNotFound, productType)
	}
	return entry, nil
}

// UpdatePrice is restricted to admins. The permission check runs before
// anything is parsed or written.
func (s *PriceService) UpdatePrice(ctx context.Context, principal *model.Principal, productType, rawPrice string) error {
	if principal == nil || !principal.IsAdmin() {
		return fmt.Errorf("%w: admin access required", ErrPermissionDenied)
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return fmt.Errorf("%w: price must be a decimal number", ErrInvalidInput)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if err := s.repo.UpdatePrice(ctx, productType, price); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product type %q", ErrNotFound, productType)
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.log.Info().Str("product_type", productType).Str("price", price.StringFixed(2)).Msg("price updated")
	return nil
}
