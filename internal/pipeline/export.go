package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"partsimport/internal"
	"partsimport/internal/util"
)

// ExportRecordToXLSX writes one sheet row per variant, with the record-level
// columns repeated on each row the way storefront CSV imports expect.
func ExportRecordToXLSX(rec internal.ProductRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{
		"title", "vendor", "tag", "product_type",
		"option1_name", "option1_value", "option2_name", "option2_value",
		"price", "inventory_policy", "inventory_management", "taxable", "requires_shipping",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	option1Name, option2Name := "", ""
	if len(rec.Options) > 0 {
		option1Name = string(rec.Options[0].Name)
	}
	if len(rec.Options) > 1 {
		option2Name = string(rec.Options[1].Name)
	}

	for i, v := range rec.Variants {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, rec.Title)
		set(2, util.Deref(rec.Vendor))
		set(3, util.Deref(rec.Tag))
		set(4, util.Deref(rec.ProductType))
		set(5, option1Name)
		set(6, v.Option1)
		if v.Option2 != nil {
			set(7, option2Name)
			set(8, *v.Option2)
		}
		set(9, util.Deref(v.Price))
		set(10, string(v.InventoryPolicy))
		set(11, v.InventoryManagement)
		set(12, v.Taxable)
		set(13, v.RequiresShipping)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
