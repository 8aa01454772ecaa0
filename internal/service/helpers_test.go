package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rollquote/quotation-service/internal/config"
	"github.com/rollquote/quotation-service/internal/model"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

type fakePriceRepo struct {
	entries   map[string]model.PriceEntry
	failWith  error
	updates   map[string]decimal.Decimal
	updateErr error
}

func newFakePriceRepo(t *testing.T) *fakePriceRepo {
	return &fakePriceRepo{
		entries: map[string]model.PriceEntry{
			"plastic": {
				ID:           uuid.New(),
				ProductType:  "plastic",
				PricePerArea: dec(t, "45.00"),
				UpdatedAt:    time.Now(),
			},
			"aluminum": {
				ID:           uuid.New(),
				ProductType:  "aluminum",
				PricePerArea: dec(t, "65.00"),
				UpdatedAt:    time.Now(),
			},
		},
		updates: map[string]decimal.Decimal{},
	}
}

func (f *fakePriceRepo) List(ctx context.Context) ([]model.PriceEntry, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	entries := make([]model.PriceEntry, 0, len(f.entries))
	for _, entry := range f.entries {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (f *fakePriceRepo) GetByType(ctx context.Context, productType string) (*model.PriceEntry, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	entry, ok := f.entries[productType]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

func (f *fakePriceRepo) UpdatePrice(ctx context.Context, productType string, price decimal.Decimal) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.entries[productType]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.updates[productType] = price
	return nil
}

type fakeQuotationRepo struct {
	stored        []model.Quotation
	failWith      error
	duplicateOnce bool
	createCalls   int
}

func (f *fakeQuotationRepo) Create(ctx context.Context, quotation model.Quotation) (*model.Quotation, error) {
	f.createCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.duplicateOnce {
		f.duplicateOnce = false
		return nil, gorm.ErrDuplicatedKey
	}
	quotation.ID = uuid.New()
	quotation.CreatedAt = time.Now().UTC()
	f.stored = append(f.stored, quotation)
	return &quotation, nil
}

func (f *fakeQuotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, quotation := range f.stored {
		if quotation.ID == id {
			return &quotation, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuotationRepo) GetByNumber(ctx context.Context, number string) (*model.Quotation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, quotation := range f.stored {
		if quotation.QuotationNumber == number {
			return &quotation, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuotationRepo) ListAll(ctx context.Context) ([]model.Quotation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.stored, nil
}

type fakePDFGenerator struct {
	failWith error
}

func (f *fakePDFGenerator) Generate(quotation model.Quotation) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []byte("%PDF-fake " + quotation.QuotationNumber), nil
}

type fakeExcelGenerator struct {
	failWith error
}

func (f *fakeExcelGenerator) Generate(quotations []model.Quotation) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []byte("xlsx-fake"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Quotes: config.QuotesConfig{
			NumberPrefix: "QT",
			VerifyTotals: true,
			CompanyName:  "Rolling Shutters",
		},
	}
}

func adminPrincipal() *model.Principal {
	return &model.Principal{UserID: uuid.New(), Name: "Admin", Role: model.RoleAdmin}
}

func userPrincipal() *model.Principal {
	return &model.Principal{UserID: uuid.New(), Name: "User", Role: model.RoleUser}
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
