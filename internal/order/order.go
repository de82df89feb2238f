package order

// OrderItem is a single product line extracted from a waybill or invoice image.
type OrderItem struct {
	Description string  `json:"description"`
	Variation   string  `json:"variation,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
	SKU         string  `json:"sku,omitempty"`
}

// OrderData is the extracted contents of one scanned waybill or invoice image.
// Missing numeric fields are zero and missing strings are empty; the report
// builders substitute placeholder literals where a value is required for
// display.
type OrderData struct {
	InvoiceNumber   string      `json:"invoiceNumber"`
	Date            string      `json:"date"`
	CustomerName    string      `json:"customerName"`
	CustomerAddress string      `json:"customerAddress"`
	CustomerEmail   string      `json:"customerEmail,omitempty"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Tax             float64     `json:"tax"`
	ShippingCost    float64     `json:"shippingCost"`
	GrandTotal      float64     `json:"grandTotal"`
	Currency        string      `json:"currency"`
	TrackingNumber  string      `json:"trackingNumber,omitempty"`
	Carrier         string      `json:"carrier,omitempty"`
	Weight          string      `json:"weight,omitempty"`
}
