package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollquote/quotation-service/internal/model"
)

func newQuotationService(t *testing.T, prices *fakePriceRepo, quotations *fakeQuotationRepo) *QuotationService {
	t.Helper()
	return NewQuotationService(quotations, prices, &fakePDFGenerator{}, &fakeExcelGenerator{}, testConfig(), nopLogger())
}

// validCreateInput carries figures consistent with the plastic catalog
// price of 45.00: 100x100 cm, one unit, 20% VAT, 10% discount.
func validCreateInput(t *testing.T) CreateQuotationInput {
	t.Helper()
	return CreateQuotationInput{
		CustomerName:         "Jane Doe",
		ProductType:          "plastic",
		Width:                dec(t, "100"),
		Height:               dec(t, "100"),
		Quantity:             1,
		Area:                 dec(t, "1.00"),
		PricePerArea:         dec(t, "45.00"),
		NetPrice:             dec(t, "45.00"),
		VATPercentage:        dec(t, "20"),
		VATAmount:            dec(t, "8.10"),
		GrossPrice:           dec(t, "40.50"),
		DiscountType:         model.DiscountPercentage,
		DiscountValue:        dec(t, "10"),
		DiscountAmount:       dec(t, "4.50"),
		AdditionalCostsTotal: dec(t, "0.00"),
		FinalTotal:           dec(t, "48.60"),
	}
}

func TestCalculateUsesCatalogPrice(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	breakdown, err := svc.Calculate(context.Background(), CalculateInput{
		ProductType:   "plastic",
		Width:         dec(t, "200"),
		Height:        dec(t, "150"),
		Quantity:      2,
		VATPercentage: dec(t, "20"),
		DiscountType:  model.DiscountNone,
	})
	require.NoError(t, err)

	assert.Equal(t, "3.00", breakdown.Area.StringFixed(2))
	assert.Equal(t, "45.00", breakdown.PricePerArea.StringFixed(2))
	assert.Equal(t, "270.00", breakdown.NetPrice.StringFixed(2))
	assert.Equal(t, "324.00", breakdown.FinalTotal.StringFixed(2))
}

func TestCalculateUnknownProduct(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	breakdown, err := svc.Calculate(context.Background(), CalculateInput{
		ProductType:   "steel",
		Width:         dec(t, "100"),
		Height:        dec(t, "100"),
		Quantity:      1,
		VATPercentage: dec(t, "20"),
		DiscountType:  model.DiscountNone,
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, breakdown)
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	_, err := svc.Calculate(context.Background(), CalculateInput{
		ProductType:   "plastic",
		Width:         dec(t, "0"),
		Height:        dec(t, "100"),
		Quantity:      1,
		VATPercentage: dec(t, "20"),
		DiscountType:  model.DiscountNone,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateAndRetrieveRoundTrip(t *testing.T) {
	quotations := &fakeQuotationRepo{}
	svc := newQuotationService(t, newFakePriceRepo(t), quotations)

	created, err := svc.Create(context.Background(), validCreateInput(t), nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(created.QuotationNumber, "QT-"))
	assert.Nil(t, created.CreatedBy)

	fetched, err := svc.GetByNumber(context.Background(), created.QuotationNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.QuotationNumber, fetched.QuotationNumber)
	assert.Equal(t, "Jane Doe", fetched.CustomerName)
	assert.Equal(t, "48.60", fetched.FinalTotal.StringFixed(2))
	assert.Equal(t, model.DiscountPercentage, fetched.DiscountType)

	byID, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, fetched, byID)
}

func TestCreateAttachesCreator(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})
	principal := userPrincipal()

	created, err := svc.Create(context.Background(), validCreateInput(t), principal)
	require.NoError(t, err)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, principal.UserID, *created.CreatedBy)
}

func TestCreateRejectsMismatchedTotals(t *testing.T) {
	quotations := &fakeQuotationRepo{}
	svc := newQuotationService(t, newFakePriceRepo(t), quotations)

	input := validCreateInput(t)
	input.FinalTotal = dec(t, "10.00")

	_, err := svc.Create(context.Background(), input, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, quotations.createCalls)
}

func TestCreateTrustsCallerWhenVerificationOff(t *testing.T) {
	quotations := &fakeQuotationRepo{}
	cfg := testConfig()
	cfg.Quotes.VerifyTotals = false
	svc := NewQuotationService(quotations, newFakePriceRepo(t), &fakePDFGenerator{}, &fakeExcelGenerator{}, cfg, nopLogger())

	input := validCreateInput(t)
	input.FinalTotal = dec(t, "10.00")

	created, err := svc.Create(context.Background(), input, nil)
	require.NoError(t, err)
	assert.Equal(t, "10.00", created.FinalTotal.StringFixed(2))
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	input := validCreateInput(t)
	input.ProductType = "steel"

	_, err := svc.Create(context.Background(), input, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRequiresCustomerName(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	input := validCreateInput(t)
	input.CustomerName = "  "

	_, err := svc.Create(context.Background(), input, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRetriesOnNumberCollision(t *testing.T) {
	quotations := &fakeQuotationRepo{duplicateOnce: true}
	svc := newQuotationService(t, newFakePriceRepo(t), quotations)

	created, err := svc.Create(context.Background(), validCreateInput(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, quotations.createCalls)
	assert.NotEmpty(t, created.QuotationNumber)
}

func TestCreateFailsLoudlyOnStorageError(t *testing.T) {
	quotations := &fakeQuotationRepo{failWith: errors.New("connection refused")}
	svc := newQuotationService(t, newFakePriceRepo(t), quotations)

	_, err := svc.Create(context.Background(), validCreateInput(t), nil)
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestListDegradesToEmptyOnStorageError(t *testing.T) {
	quotations := &fakeQuotationRepo{failWith: errors.New("connection refused")}
	svc := newQuotationService(t, newFakePriceRepo(t), quotations)

	result := svc.List(context.Background())
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestGetByNumberNotFound(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	_, err := svc.GetByNumber(context.Background(), "QT-0")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGeneratePDF(t *testing.T) {
	quotations := &fakeQuotationRepo{}
	svc := newQuotationService(t, newFakePriceRepo(t), quotations)

	created, err := svc.Create(context.Background(), validCreateInput(t), nil)
	require.NoError(t, err)

	doc, err := svc.GeneratePDF(context.Background(), created.QuotationNumber)
	require.NoError(t, err)
	assert.Equal(t, "quotation-"+created.QuotationNumber+".pdf", doc.FileName)
	assert.NotEmpty(t, doc.Content)
}

func TestGeneratePDFUnknownNumber(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	_, err := svc.GeneratePDF(context.Background(), "QT-missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGeneratePDFRenderFailure(t *testing.T) {
	quotations := &fakeQuotationRepo{}
	cfg := testConfig()
	pdfGen := &fakePDFGenerator{failWith: errors.New("disk full")}
	svc := NewQuotationService(quotations, newFakePriceRepo(t), pdfGen, &fakeExcelGenerator{}, cfg, nopLogger())

	created, err := svc.Create(context.Background(), validCreateInput(t), nil)
	require.NoError(t, err)

	doc, err := svc.GeneratePDF(context.Background(), created.QuotationNumber)
	require.ErrorIs(t, err, ErrRenderFailed)
	assert.Nil(t, doc)
}

func TestExportExcelRequiresAdmin(t *testing.T) {
	svc := newQuotationService(t, newFakePriceRepo(t), &fakeQuotationRepo{})

	_, err := svc.ExportExcel(context.Background(), nil)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.ExportExcel(context.Background(), userPrincipal())
	require.ErrorIs(t, err, ErrPermissionDenied)

	doc, err := svc.ExportExcel(context.Background(), adminPrincipal())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.FileName, "quotations-"))
	assert.True(t, strings.HasSuffix(doc.FileName, ".xlsx"))
}
