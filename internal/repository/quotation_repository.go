package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rollquote/quotation-service/internal/model"
)

const quotationColumns = `
	id,
	quotation_number,
	customer_name,
	customer_email,
	customer_phone,
	customer_address,
	product_type,
	width,
	height,
	quantity,
	area,
	price_per_area,
	net_price,
	vat_percentage,
	vat_amount,
	gross_price,
	discount_type,
	discount_value,
	discount_amount,
	additional_costs,
	additional_costs_total,
	final_total,
	notes,
	created_by,
	created_at
`

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// Create inserts the record exactly as submitted and returns the stored
// row. A duplicate quotation number surfaces as gorm.ErrDuplicatedKey
// so the caller can retry with a fresh number.
func (r *QuotationRepository) Create(ctx context.Context, quotation model.Quotation) (*model.Quotation, error) {
	var saved model.Quotation
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO quotations (
			quotation_number,
			customer_name,
			customer_email,
			customer_phone,
			customer_address,
			product_type,
			width,
			height,
			quantity,
			area,
			price_per_area,
			net_price,
			vat_percentage,
			vat_amount,
			gross_price,
			discount_type,
			discount_value,
			discount_amount,
			additional_costs,
			additional_costs_total,
			final_total,
			notes,
			created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?, ?, ?, ?)
		RETURNING `+quotationColumns,
		quotation.QuotationNumber,
		quotation.CustomerName,
		quotation.CustomerEmail,
		quotation.CustomerPhone,
		quotation.CustomerAddress,
		quotation.ProductType,
		quotation.Width,
		quotation.Height,
		quotation.Quantity,
		quotation.Area,
		quotation.PricePerArea,
		quotation.NetPrice,
		quotation.VATPercentage,
		quotation.VATAmount,
		quotation.GrossPrice,
		quotation.DiscountType,
		quotation.DiscountValue,
		quotation.DiscountAmount,
		quotation.AdditionalCosts,
		quotation.AdditionalCostsTotal,
		quotation.FinalTotal,
		quotation.Notes,
		quotation.CreatedBy,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+quotationColumns+`
		FROM quotations
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&quotation).Error
	if err != nil {
		return nil, err
	}
	if quotation.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &quotation, nil
}

func (r *QuotationRepository) GetByNumber(ctx context.Context, number string) (*model.Quotation, error) {
	var quotation model.Quotation
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+quotationColumns+`
		FROM quotations
		WHERE quotation_number = ?
		LIMIT 1
	`, number).Scan(&quotation).Error
	if err != nil {
		return nil, err
	}
	if quotation.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &quotation, nil
}

func (r *QuotationRepository) ListAll(ctx context.Context) ([]model.Quotation, error) {
	var quotations []model.Quotation
	err := r.db.WithContext(ctx).Raw(`
		SELECT ` + quotationColumns + `
		FROM quotations
		ORDER BY created_at ASC
	`).Scan(&quotations).Error
	if err != nil {
		return nil, err
	}
	return quotations, nil
}
