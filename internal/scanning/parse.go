package scanning

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"waybill-tracker/internal/order"
)

// flexNumber tolerates the shapes vision models produce for numeric fields:
// plain numbers, numbers quoted as strings, null, or junk text. Anything
// unparseable or negative becomes 0 so a partial extraction still aggregates.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || f < 0 {
		*n = 0
		return nil
	}
	*n = flexNumber(f)
	return nil
}

type rawOrderItem struct {
	Description string     `json:"description"`
	Variation   string     `json:"variation"`
	Quantity    flexNumber `json:"quantity"`
	UnitPrice   flexNumber `json:"unitPrice"`
	Total       flexNumber `json:"total"`
	SKU         string     `json:"sku"`
}

type rawOrder struct {
	InvoiceNumber   string         `json:"invoiceNumber"`
	Date            string         `json:"date"`
	CustomerName    string         `json:"customerName"`
	CustomerAddress string         `json:"customerAddress"`
	CustomerEmail   string         `json:"customerEmail"`
	Items           []rawOrderItem `json:"items"`
	Subtotal        flexNumber     `json:"subtotal"`
	Tax             flexNumber     `json:"tax"`
	ShippingCost    flexNumber     `json:"shippingCost"`
	GrandTotal      flexNumber     `json:"grandTotal"`
	Currency        string         `json:"currency"`
	TrackingNumber  string         `json:"trackingNumber"`
	Carrier         string         `json:"carrier"`
	Weight          string         `json:"weight"`
}

// parseOrderJSON parses the JSON reply from the model into orders. The reply
// may be wrapped in markdown fences or prose; the array boundaries are found
// by bracket scan. A single bare object is accepted as a one-order batch.
func parseOrderJSON(text string) ([]order.OrderData, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "[")
	endIdx := strings.LastIndex(text, "]")
	if startIdx == -1 || endIdx < startIdx {
		// Some models return a single object for a single image
		objStart := strings.Index(text, "{")
		objEnd := strings.LastIndex(text, "}")
		if objStart == -1 || objEnd < objStart {
			return nil, fmt.Errorf("no JSON array found in response")
		}
		text = "[" + text[objStart:objEnd+1] + "]"
	} else {
		text = text[startIdx : endIdx+1]
	}

	var raws []rawOrder
	if err := json.Unmarshal([]byte(text), &raws); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	orders := make([]order.OrderData, 0, len(raws))
	for _, r := range raws {
		o := order.OrderData{
			InvoiceNumber:   strings.TrimSpace(r.InvoiceNumber),
			Date:            strings.TrimSpace(r.Date),
			CustomerName:    strings.TrimSpace(r.CustomerName),
			CustomerAddress: strings.TrimSpace(r.CustomerAddress),
			CustomerEmail:   strings.TrimSpace(r.CustomerEmail),
			Subtotal:        float64(r.Subtotal),
			Tax:             float64(r.Tax),
			ShippingCost:    float64(r.ShippingCost),
			GrandTotal:      float64(r.GrandTotal),
			Currency:        strings.TrimSpace(r.Currency),
			TrackingNumber:  strings.TrimSpace(r.TrackingNumber),
			Carrier:         strings.TrimSpace(r.Carrier),
			Weight:          strings.TrimSpace(r.Weight),
		}
		for _, it := range r.Items {
			o.Items = append(o.Items, order.OrderItem{
				Description: strings.TrimSpace(it.Description),
				Variation:   strings.TrimSpace(it.Variation),
				Quantity:    float64(it.Quantity),
				UnitPrice:   float64(it.UnitPrice),
				Total:       float64(it.Total),
				SKU:         strings.TrimSpace(it.SKU),
			})
		}
		orders = append(orders, o)
	}
	return orders, nil
}
