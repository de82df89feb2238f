package batch

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"waybill-tracker/internal/order"
)

// buildXLSX renders one report as an Excel workbook. The layout mirrors the
// CSV export, including the two-block aggregate sheet.
func buildXLSX(report string, orders []order.OrderData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	write := func(row int, values []any) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	switch report {
	case "waybill":
		err = writeWaybillSheet(write, orders)
	case "aggregate":
		err = writeAggregateSheet(write, orders)
	case "invoice":
		err = writeInvoiceSheet(write, orders)
	default:
		err = fmt.Errorf("unknown report: %s", report)
	}
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type rowWriter func(row int, values []any) error

func writeWaybillSheet(write rowWriter, orders []order.OrderData) error {
	if err := write(1, []any{"Line No", "Order ID", "Customer Name", "Customer Address", "Courier Service", "Status"}); err != nil {
		return err
	}
	for i, r := range order.BuildWaybillRows(orders) {
		if err := write(i+2, []any{r.LineNo, r.OrderID, r.CustomerName, r.CustomerAddress, r.Carrier, r.Status}); err != nil {
			return err
		}
	}
	return nil
}

func writeAggregateSheet(write rowWriter, orders []order.OrderData) error {
	rows, summary := order.BuildAggregate(orders)

	if err := write(1, []any{"Name", "Order ID", "Product Name", "Variation", "QTY"}); err != nil {
		return err
	}
	row := 2
	for _, r := range rows {
		if err := write(row, []any{r.Name, r.OrderIDs, r.ProductName, r.Variation, r.Qty}); err != nil {
			return err
		}
		row++
	}

	// Two blank rows between the blocks, matching the CSV layout
	row += 2
	if err := write(row, []any{"Final Product Release Summary"}); err != nil {
		return err
	}
	row++
	if err := write(row, []any{"Product Name", "Variation", "Final Release Qty"}); err != nil {
		return err
	}
	row++
	for _, s := range summary {
		if err := write(row, []any{s.Name, s.Variation, s.TotalQty}); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeInvoiceSheet(write rowWriter, orders []order.OrderData) error {
	if err := write(1, []any{"Customer Name", "Order ID", "Product Name", "Variation", "Qty", "Unit Price", "Total Price", "Net VAT", "VAT"}); err != nil {
		return err
	}
	for i, r := range order.BuildInvoiceRows(orders) {
		if err := write(i+2, []any{
			order.FormatText(r.CustomerName),
			order.FormatText(r.OrderID),
			order.FormatText(r.ProductName),
			order.FormatText(r.Variation),
			r.Qty,
			r.UnitPrice,
			r.TotalPrice,
			r.NetVAT,
			r.VAT,
		}); err != nil {
			return err
		}
	}
	return nil
}
