package order

import (
	"strconv"
	"strings"
)

// WaybillRow is one shipping-label line in the waybill report.
type WaybillRow struct {
	LineNo          int    `json:"lineNo"`
	OrderID         string `json:"orderId"`
	CustomerName    string `json:"customerName"`
	CustomerAddress string `json:"customerAddress"`
	Carrier         string `json:"carrier"`
	CarrierClass    string `json:"carrierClass"`
	Status          string `json:"status"`
}

// waybillStatus is the constant status shown for every processed order.
const waybillStatus = "Ready"

// CarrierClass maps a courier name onto a fixed display category by substring
// match. The categories drive badge styling only; the carrier string itself
// is what reports export. Courier names come from the extraction model, so
// they are not a fixed enumeration.
func CarrierClass(carrier string) string {
	switch {
	case strings.Contains(carrier, "SPX"):
		return "spx"
	case strings.Contains(carrier, "J&T"):
		return "jnt"
	case strings.Contains(carrier, "FLASH"):
		return "flash"
	case strings.Contains(carrier, "LEX"):
		return "lex"
	case strings.Contains(carrier, "Ninja"):
		return "ninja"
	case strings.Contains(carrier, "Kerry"):
		return "kerry"
	default:
		return "other"
	}
}

// BuildWaybillRows maps each order 1:1 into a waybill row, numbered from 1 in
// input order.
func BuildWaybillRows(orders []OrderData) []WaybillRow {
	rows := make([]WaybillRow, 0, len(orders))
	for i, o := range orders {
		orderID := o.InvoiceNumber
		if orderID == "" {
			orderID = "N/A"
		}
		name := o.CustomerName
		if name == "" {
			name = "Unknown Customer"
		}
		carrier := o.Carrier
		if carrier == "" {
			carrier = "Unknown"
		}
		rows = append(rows, WaybillRow{
			LineNo:          i + 1,
			OrderID:         orderID,
			CustomerName:    name,
			CustomerAddress: o.CustomerAddress,
			Carrier:         carrier,
			CarrierClass:    CarrierClass(o.Carrier),
			Status:          waybillStatus,
		})
	}
	return rows
}

// WaybillCSV serializes waybill rows for download as waybill_report.csv.
func WaybillCSV(rows []WaybillRow) string {
	header := []string{"Line No", "Order ID", "Customer Name", "Customer Address", "Courier Service", "Status"}
	out := make([][]Field, 0, len(rows))
	for _, r := range rows {
		out = append(out, []Field{
			raw(strconv.Itoa(r.LineNo)),
			quoted(r.OrderID),
			quoted(r.CustomerName),
			quoted(r.CustomerAddress),
			quoted(r.Carrier),
			raw(r.Status),
		})
	}
	return CSV(header, out)
}
