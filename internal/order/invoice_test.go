package order

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BuildInvoiceRows", func() {
	var (
		orders []OrderData
		rows   []InvoiceRow
	)

	JustBeforeEach(func() {
		rows = BuildInvoiceRows(orders)
	})

	When("orders carry items", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob", Currency: "₱", Items: []OrderItem{
					{Description: "Shirt", Variation: "Red", Quantity: 2, UnitPrice: 10, Total: 20},
					{Description: "Hat", Quantity: 1, UnitPrice: 5, Total: 5},
				}},
				{InvoiceNumber: "A2", CustomerName: "Alice", Currency: "₱", Items: []OrderItem{
					{Description: "Mug", Quantity: 3, UnitPrice: 4, Total: 12},
				}},
			}
		})

		It("emits one row per item in input order", func() {
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].ProductName).To(Equal("Shirt"))
			Expect(rows[1].ProductName).To(Equal("Hat"))
			Expect(rows[2].ProductName).To(Equal("Mug"))
		})

		It("splits the total into net and VAT at 12%", func() {
			Expect(rows[0].NetVAT).To(BeNumerically("~", 2.4, 1e-9))
			Expect(rows[0].VAT).To(BeNumerically("~", 17.6, 1e-9))
		})

		It("keeps net plus VAT equal to the total", func() {
			for _, r := range rows {
				Expect(r.NetVAT + r.VAT).To(BeNumerically("~", r.TotalPrice, 1e-9))
			}
		})

		It("carries the order currency onto every row", func() {
			Expect(rows[0].Currency).To(Equal("₱"))
			Expect(rows[2].Currency).To(Equal("₱"))
		})
	})

	When("an item has no explicit total", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob", Items: []OrderItem{
					{Description: "Shirt", Quantity: 3, UnitPrice: 7},
				}},
			}
		})

		It("falls back to quantity times unit price", func() {
			Expect(rows[0].TotalPrice).To(Equal(21.0))
		})
	})

	When("an order has no items", func() {
		BeforeEach(func() {
			orders = []OrderData{{InvoiceNumber: "A1", CustomerName: "Bob"}}
		})

		It("emits a single placeholder row with zeroed amounts", func() {
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].CustomerName).To(Equal("Bob"))
			Expect(rows[0].OrderID).To(Equal("A1"))
			Expect(rows[0].ProductName).To(Equal(""))
			Expect(rows[0].Qty).To(Equal(0.0))
			Expect(rows[0].TotalPrice).To(Equal(0.0))
		})
	})

	When("orders mix empty and populated item lists", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", Items: []OrderItem{{Description: "Shirt"}, {Description: "Hat"}}},
				{InvoiceNumber: "A2"},
				{InvoiceNumber: "A3", Items: []OrderItem{{Description: "Mug"}}},
			}
		})

		It("counts max(1, item count) rows per order", func() {
			Expect(rows).To(HaveLen(4))
		})
	})

	When("the input is empty", func() {
		BeforeEach(func() {
			orders = nil
		})

		It("returns an empty, non-nil slice", func() {
			Expect(rows).NotTo(BeNil())
			Expect(rows).To(BeEmpty())
		})
	})
})

var _ = Describe("display formatting", func() {
	It("renders zero money as a dash", func() {
		Expect(FormatMoney(0, "₱")).To(Equal("-"))
	})

	It("prefixes non-zero money with the currency", func() {
		Expect(FormatMoney(17.6, "₱")).To(Equal("₱17.60"))
	})

	It("renders empty text as a dash", func() {
		Expect(FormatText("")).To(Equal("-"))
		Expect(FormatText("Shirt")).To(Equal("Shirt"))
	})
})

var _ = Describe("InvoiceCSV", func() {
	It("writes quantity bare and money quoted with two decimals", func() {
		rows := BuildInvoiceRows([]OrderData{
			{InvoiceNumber: "A1", CustomerName: "Bob", Items: []OrderItem{
				{Description: "Shirt", Variation: "Red", Quantity: 2, UnitPrice: 10, Total: 20},
			}},
		})
		out := InvoiceCSV(rows)
		lines := strings.Split(out, "\n")
		Expect(lines[0]).To(Equal("Customer Name,Order ID,Product Name,Variation,Qty,Unit Price,Total Price,Net VAT,VAT"))
		Expect(lines[1]).To(Equal(`"Bob","A1","Shirt","Red",2,"10.00","20.00","2.40","17.60"`))
	})

	It("dashes out the placeholder row", func() {
		rows := BuildInvoiceRows([]OrderData{{}})
		out := InvoiceCSV(rows)
		lines := strings.Split(out, "\n")
		Expect(lines[1]).To(Equal(`"-","-","-","-",-,"0.00","0.00","0.00","0.00"`))
	})
})
