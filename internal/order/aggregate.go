package order

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AggregateRow is one flattened line of the consolidated customer table. The
// customer name and order-id list repeat on every row so the data is complete
// in exports; FirstForCustomer tells renderers which row carries the visible
// name when row-spanning.
type AggregateRow struct {
	Name             string `json:"name"`
	OrderIDs         string `json:"orderIds"`
	ProductName      string `json:"productName"`
	Variation        string `json:"variation"`
	Qty              string `json:"qty"`
	FirstForCustomer bool   `json:"firstForCustomer"`
}

// ProductSummary is the total quantity to release for one product/variation
// pair across every order in the input.
type ProductSummary struct {
	Name      string  `json:"name"`
	Variation string  `json:"variation"`
	TotalQty  float64 `json:"totalQty"`
}

type consolidatedCustomer struct {
	name     string
	orderIDs []string
	seen     map[string]bool
	items    []OrderItem
}

// BuildAggregate groups orders by trimmed customer name and items by
// product+variation. Customers iterate in first-encountered order; the
// product summary is sorted by name using a collation compare so casing and
// accents order naturally.
func BuildAggregate(orders []OrderData) ([]AggregateRow, []ProductSummary) {
	customers := make(map[string]*consolidatedCustomer)
	var customerOrder []string

	summaries := make(map[string]*ProductSummary)
	var summaryOrder []string

	for _, o := range orders {
		name := strings.TrimSpace(o.CustomerName)
		if name == "" {
			name = "Unknown Customer"
		}

		c, ok := customers[name]
		if !ok {
			c = &consolidatedCustomer{name: name, seen: make(map[string]bool)}
			customers[name] = c
			customerOrder = append(customerOrder, name)
		}

		// Empty invoice numbers are filtered out, not stored as "".
		if o.InvoiceNumber != "" && !c.seen[o.InvoiceNumber] {
			c.seen[o.InvoiceNumber] = true
			c.orderIDs = append(c.orderIDs, o.InvoiceNumber)
		}

		for _, item := range o.Items {
			c.items = append(c.items, item)

			variation := item.Variation
			if variation == "" {
				variation = "N/A"
			}
			key := item.Description + "__" + variation
			s, ok := summaries[key]
			if !ok {
				productName := item.Description
				if productName == "" {
					productName = "Unknown Product"
				}
				s = &ProductSummary{Name: productName, Variation: variation}
				summaries[key] = s
				summaryOrder = append(summaryOrder, key)
			}
			s.TotalQty += item.Quantity
		}
	}

	rows := make([]AggregateRow, 0, len(orders))
	for _, name := range customerOrder {
		c := customers[name]
		orderIDs := strings.Join(c.orderIDs, ", ")
		if orderIDs == "" {
			orderIDs = "N/A"
		}

		if len(c.items) == 0 {
			rows = append(rows, AggregateRow{
				Name:             c.name,
				OrderIDs:         orderIDs,
				ProductName:      "N/A",
				Variation:        "N/A",
				Qty:              "N/A",
				FirstForCustomer: true,
			})
			continue
		}

		for i, item := range c.items {
			productName := item.Description
			if productName == "" {
				productName = "N/A"
			}
			variation := item.Variation
			if variation == "" {
				variation = "N/A"
			}
			qty := "N/A"
			if item.Quantity != 0 {
				qty = formatNumber(item.Quantity)
			}
			rows = append(rows, AggregateRow{
				Name:             c.name,
				OrderIDs:         orderIDs,
				ProductName:      productName,
				Variation:        variation,
				Qty:              qty,
				FirstForCustomer: i == 0,
			})
		}
	}

	summary := make([]ProductSummary, 0, len(summaryOrder))
	for _, key := range summaryOrder {
		summary = append(summary, *summaries[key])
	}
	coll := collate.New(language.English)
	sort.SliceStable(summary, func(i, j int) bool {
		return coll.CompareString(summary[i].Name, summary[j].Name) < 0
	})

	return rows, summary
}

// AggregateCSV serializes the customer table and, two blank lines below it,
// the product release summary, for download as aggregate_report.csv.
func AggregateCSV(rows []AggregateRow, summary []ProductSummary) string {
	lines := make([]string, 0, len(rows)+len(summary)+5)
	lines = append(lines, strings.Join([]string{"Name", "Order ID", "Product Name", "Variation", "QTY"}, ","))
	for _, r := range rows {
		lines = append(lines, csvLine([]Field{
			quoted(r.Name),
			quoted(r.OrderIDs),
			quoted(r.ProductName),
			quoted(r.Variation),
			quoted(r.Qty),
		}))
	}

	lines = append(lines, "", "")
	lines = append(lines, "Final Product Release Summary")
	lines = append(lines, strings.Join([]string{"Product Name", "Variation", "Final Release Qty"}, ","))
	for _, s := range summary {
		lines = append(lines, csvLine([]Field{
			quoted(s.Name),
			quoted(s.Variation),
			quoted(formatNumber(s.TotalQty)),
		}))
	}
	return strings.Join(lines, "\n")
}
