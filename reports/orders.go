// Package reports builds spreadsheet exports for the shop staff.
package reports

import (
	"fmt"
	"io"

	"github.com/flowershop/models"
	"github.com/tealeg/xlsx"
)

// IndividualOrdersSheet is the sheet name of the individual order export
const IndividualOrdersSheet = "Individual orders"

var individualOrderHeaders = []string{
	"Reference", "Received", "Name", "Phone", "Email",
	"Contact method", "Budget", "Description",
}

// IndividualOrdersWorkbook lays out individual orders one per row under a
// header row
func IndividualOrdersWorkbook(orders []models.IndividualOrder) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(IndividualOrdersSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range individualOrderHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.Reference.String())
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.Name)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.Email)
		row.AddCell().SetValue(o.ContactMethod)
		if o.Budget != nil {
			row.AddCell().SetValue(o.Budget.StringFixed(2))
		} else {
			row.AddCell()
		}
		row.AddCell().SetValue(o.Description)
	}

	return file, nil
}

// WriteIndividualOrders writes the individual order workbook to w
func WriteIndividualOrders(w io.Writer, orders []models.IndividualOrder) error {
	file, err := IndividualOrdersWorkbook(orders)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
