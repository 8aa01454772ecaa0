package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rollquote/quotation-service/internal/model"
)

type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) List(ctx context.Context) ([]model.PriceEntry, error) {
	var entries []model.PriceEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_type,
			price_per_area,
			description,
			created_at,
			updated_at
		FROM product_prices
		ORDER BY product_type
	`).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PriceRepository) GetByType(ctx context.Context, productType string) (*model.PriceEntry, error) {
	var entry model.PriceEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_type,
			price_per_area,
			description,
			created_at,
			updated_at
		FROM product_prices
		WHERE product_type = ?
		LIMIT 1
	`, productType).Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

// UpdatePrice overwrites the price and bumps updated_at. Missing product
// types are reported as not found, never created implicitly.
func (r *PriceRepository) UpdatePrice(ctx context.Context, productType string, price decimal.Decimal) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE product_prices
		SET price_per_area = ?, updated_at = NOW()
		WHERE product_type = ?
	`, price, productType)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
