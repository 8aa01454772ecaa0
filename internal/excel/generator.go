package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rollquote/quotation-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the quotation history into a single worksheet,
// one row per quotation in the order given.
func (g *Generator) Generate(quotations []model.Quotation) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Quotations"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Quotation Number",
		"Created",
		"Customer",
		"Product Type",
		"Width (cm)",
		"Height (cm)",
		"Quantity",
		"Area (m2)",
		"Net Price",
		"Discount",
		"VAT",
		"Additional Costs",
		"Final Total",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		set(cell, header)
	}

	for i, q := range quotations {
		row := i + 2
		set(fmt.Sprintf("A%d", row), q.QuotationNumber)
		set(fmt.Sprintf("B%d", row), q.CreatedAt.Format("2006-01-02 15:04"))
		set(fmt.Sprintf("C%d", row), q.CustomerName)
		set(fmt.Sprintf("D%d", row), q.ProductType)
		set(fmt.Sprintf("E%d", row), q.Width.InexactFloat64())
		set(fmt.Sprintf("F%d", row), q.Height.InexactFloat64())
		set(fmt.Sprintf("G%d", row), q.Quantity)
		set(fmt.Sprintf("H%d", row), q.Area.InexactFloat64())
		set(fmt.Sprintf("I%d", row), q.NetPrice.InexactFloat64())
		set(fmt.Sprintf("J%d", row), q.DiscountAmount.InexactFloat64())
		set(fmt.Sprintf("K%d", row), q.VATAmount.InexactFloat64())
		set(fmt.Sprintf("L%d", row), q.AdditionalCostsTotal.InexactFloat64())
		set(fmt.Sprintf("M%d", row), q.FinalTotal.InexactFloat64())
	}

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "B", 18)
	_ = file.SetColWidth(sheet, "C", "C", 30)
	_ = file.SetColWidth(sheet, "D", "D", 16)
	_ = file.SetColWidth(sheet, "E", "M", 12)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
