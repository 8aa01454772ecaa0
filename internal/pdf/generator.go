package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/rollquote/quotation-service/internal/model"
)

const (
	labelWidth  = 120
	amountWidth = 60
)

type Generator struct {
	companyName string
}

func NewGenerator(companyName string) *Generator {
	return &Generator{companyName: companyName}
}

// Generate renders a stored quotation into a printable A4 document.
// It reads the record only, so repeated calls yield equivalent output.
func (g *Generator) Generate(q model.Quotation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Quotation %s", q.QuotationNumber), false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "QUOTATION", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Quotation #%s", q.QuotationNumber), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	divider(pdf)
	pdf.Ln(4)

	sectionTitle(pdf, "Customer Information")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Name: %s", q.CustomerName)), "", 1, "L", false, 0, "")
	if q.CustomerEmail != nil && *q.CustomerEmail != "" {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Email: %s", *q.CustomerEmail)), "", 1, "L", false, 0, "")
	}
	if q.CustomerPhone != nil && *q.CustomerPhone != "" {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Phone: %s", *q.CustomerPhone)), "", 1, "L", false, 0, "")
	}
	if q.CustomerAddress != nil && *q.CustomerAddress != "" {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Address: %s", *q.CustomerAddress)), "", "L", false)
	}
	pdf.Ln(4)

	sectionTitle(pdf, "Product Details")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Product Type: %s", displayProductType(q.ProductType))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Dimensions: %s cm × %s cm", q.Width.StringFixed(2), q.Height.StringFixed(2))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Quantity: %d", q.Quantity), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total Area: %s m²", q.Area.StringFixed(2))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Price per m²: %s", money(q.PricePerArea))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, "Pricing Breakdown")
	pdf.SetFont("Helvetica", "", 11)
	amountRow(pdf, tr, "Net Price:", money(q.NetPrice), false)

	if q.DiscountType != model.DiscountNone && q.DiscountAmount.IsPositive() {
		label := "Discount:"
		if q.DiscountType == model.DiscountPercentage {
			label = fmt.Sprintf("Discount (%s%%):", q.DiscountValue.StringFixed(0))
		}
		amountRow(pdf, tr, label, "-"+money(q.DiscountAmount), false)
	}

	amountRow(pdf, tr, "Gross Price:", money(q.GrossPrice), false)
	amountRow(pdf, tr, fmt.Sprintf("VAT (%s%%):", q.VATPercentage.StringFixed(0)), money(q.VATAmount), false)

	if len(q.AdditionalCosts) > 0 {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Additional Costs:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, cost := range q.AdditionalCosts {
			amountRow(pdf, tr, fmt.Sprintf("  %s:", cost.Label), money(cost.Amount), false)
		}
	}

	pdf.Ln(2)
	divider(pdf)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 13)
	amountRow(pdf, tr, "TOTAL:", money(q.FinalTotal), true)
	pdf.Ln(4)

	if q.Notes != nil && strings.TrimSpace(*q.Notes) != "" {
		sectionTitle(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*q.Notes), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "", 9)
	footer := fmt.Sprintf("Generated on %s", q.CreatedAt.Format("January 2, 2006"))
	if g.companyName != "" {
		footer = fmt.Sprintf("%s · %s", g.companyName, footer)
	}
	pdf.CellFormat(0, 5, tr(footer), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func divider(pdf *gofpdf.Fpdf) {
	pdf.SetLineWidth(0.5)
	x := pdf.GetX()
	y := pdf.GetY()
	pageWidth, _ := pdf.GetPageSize()
	pdf.Line(x, y, pageWidth-15, y)
}

func amountRow(pdf *gofpdf.Fpdf, tr func(string) string, label, amount string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	size := 11.0
	if bold {
		size = 13
	}
	pdf.SetFont("Helvetica", style, size)
	pdf.CellFormat(labelWidth, 7, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, 7, tr(amount), "", 1, "R", false, 0, "")
}

func money(value decimal.Decimal) string {
	return "€" + value.StringFixed(2)
}

func displayProductType(productType string) string {
	words := strings.Split(strings.ReplaceAll(productType, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
