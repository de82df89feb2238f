package order

// InvoiceRow is one (order, item) line of the invoice list, with the line
// total split into net and VAT at a fixed 12% rate. An order with no items
// contributes a single placeholder row so it still appears in the list.
type InvoiceRow struct {
	CustomerName string  `json:"customerName"`
	OrderID      string  `json:"orderId"`
	ProductName  string  `json:"productName"`
	Variation    string  `json:"variation"`
	Qty          float64 `json:"qty"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	NetVAT       float64 `json:"netVat"`
	VAT          float64 `json:"vat"`
	Currency     string  `json:"currency"`
}

// vatRate is the fixed split the source business applies to line totals. The
// remainder after taking 12% is reported as VAT; keep the formula as-is.
const vatRate = 0.12

// BuildInvoiceRows flattens orders into one row per item, orders outer and
// items inner, preserving input order throughout.
func BuildInvoiceRows(orders []OrderData) []InvoiceRow {
	rows := make([]InvoiceRow, 0, len(orders))
	for _, o := range orders {
		if len(o.Items) == 0 {
			rows = append(rows, InvoiceRow{
				CustomerName: o.CustomerName,
				OrderID:      o.InvoiceNumber,
				Currency:     o.Currency,
			})
			continue
		}

		for _, item := range o.Items {
			totalPrice := item.Total
			if totalPrice == 0 {
				totalPrice = item.Quantity * item.UnitPrice
			}
			netVAT := totalPrice * vatRate
			rows = append(rows, InvoiceRow{
				CustomerName: o.CustomerName,
				OrderID:      o.InvoiceNumber,
				ProductName:  item.Description,
				Variation:    item.Variation,
				Qty:          item.Quantity,
				UnitPrice:    item.UnitPrice,
				TotalPrice:   totalPrice,
				NetVAT:       netVAT,
				VAT:          totalPrice - netVAT,
				Currency:     o.Currency,
			})
		}
	}
	return rows
}

// FormatMoney renders a monetary value for display: zero shows as a dash,
// anything else as the currency string followed by two decimals.
func FormatMoney(val float64, currency string) string {
	if val == 0 {
		return "-"
	}
	return currency + formatMoney(val)
}

// FormatText renders a text field for display, substituting a dash when empty.
func FormatText(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// InvoiceCSV serializes invoice rows for download as invoice_list_report.csv.
// Quantity is written bare (a dash when zero); money fields are always quoted
// with two decimals.
func InvoiceCSV(rows []InvoiceRow) string {
	header := []string{"Customer Name", "Order ID", "Product Name", "Variation", "Qty", "Unit Price", "Total Price", "Net VAT", "VAT"}
	out := make([][]Field, 0, len(rows))
	for _, r := range rows {
		qty := "-"
		if r.Qty != 0 {
			qty = formatNumber(r.Qty)
		}
		out = append(out, []Field{
			quoted(FormatText(r.CustomerName)),
			quoted(FormatText(r.OrderID)),
			quoted(FormatText(r.ProductName)),
			quoted(FormatText(r.Variation)),
			raw(qty),
			quoted(formatMoney(r.UnitPrice)),
			quoted(formatMoney(r.TotalPrice)),
			quoted(formatMoney(r.NetVAT)),
			quoted(formatMoney(r.VAT)),
		})
	}
	return CSV(header, out)
}
