package order

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BuildAggregate", func() {
	var (
		orders  []OrderData
		rows    []AggregateRow
		summary []ProductSummary
	)

	JustBeforeEach(func() {
		rows, summary = BuildAggregate(orders)
	})

	When("one customer has multiple orders of the same product", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob", Items: []OrderItem{
					{Description: "Shirt", Variation: "Red", Quantity: 2, UnitPrice: 10, Total: 20},
				}},
				{InvoiceNumber: "A2", CustomerName: "Bob", Items: []OrderItem{
					{Description: "Shirt", Variation: "Red", Quantity: 3, UnitPrice: 10, Total: 30},
				}},
			}
		})

		It("consolidates into one customer with both order ids", func() {
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Name).To(Equal("Bob"))
			Expect(rows[0].OrderIDs).To(Equal("A1, A2"))
			Expect(rows[1].OrderIDs).To(Equal("A1, A2"))
		})

		It("flags only the first row for the customer", func() {
			Expect(rows[0].FirstForCustomer).To(BeTrue())
			Expect(rows[1].FirstForCustomer).To(BeFalse())
		})

		It("sums quantities in the product summary", func() {
			Expect(summary).To(HaveLen(1))
			Expect(summary[0].Name).To(Equal("Shirt"))
			Expect(summary[0].Variation).To(Equal("Red"))
			Expect(summary[0].TotalQty).To(Equal(5.0))
		})
	})

	When("customer names need trimming", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob ", Items: []OrderItem{{Description: "Shirt", Quantity: 1}}},
				{InvoiceNumber: "A2", CustomerName: " Bob", Items: []OrderItem{{Description: "Hat", Quantity: 1}}},
			}
		})

		It("groups them under the trimmed name", func() {
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Name).To(Equal("Bob"))
			Expect(rows[1].Name).To(Equal("Bob"))
		})
	})

	When("the same product appears for different customers", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob", Items: []OrderItem{{Description: "Shirt", Variation: "Red", Quantity: 2}}},
				{InvoiceNumber: "A2", CustomerName: "Alice", Items: []OrderItem{{Description: "Shirt", Variation: "Red", Quantity: 4}}},
				{InvoiceNumber: "A3", CustomerName: "Alice", Items: []OrderItem{{Description: "Shirt", Variation: "Blue", Quantity: 1}}},
			}
		})

		It("keeps customers separate but sums products across them", func() {
			Expect(rows).To(HaveLen(3))
			Expect(summary).To(HaveLen(2))
			for _, s := range summary {
				if s.Variation == "Red" {
					Expect(s.TotalQty).To(Equal(6.0))
				} else {
					Expect(s.TotalQty).To(Equal(1.0))
				}
			}
		})

		It("does not drop or duplicate any item", func() {
			var total float64
			for _, s := range summary {
				total += s.TotalQty
			}
			Expect(total).To(Equal(7.0))
		})
	})

	When("a variation is missing", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob", Items: []OrderItem{
					{Description: "Shirt", Quantity: 1},
					{Description: "Shirt", Quantity: 2},
				}},
			}
		})

		It("defaults the variation key to N/A and merges the items", func() {
			Expect(summary).To(HaveLen(1))
			Expect(summary[0].Variation).To(Equal("N/A"))
			Expect(summary[0].TotalQty).To(Equal(3.0))
		})
	})

	When("a customer has an order with no items", func() {
		BeforeEach(func() {
			orders = []OrderData{{InvoiceNumber: "A1", CustomerName: "Bob"}}
		})

		It("emits a single placeholder row", func() {
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Name).To(Equal("Bob"))
			Expect(rows[0].OrderIDs).To(Equal("A1"))
			Expect(rows[0].ProductName).To(Equal("N/A"))
			Expect(rows[0].Variation).To(Equal("N/A"))
			Expect(rows[0].Qty).To(Equal("N/A"))
			Expect(rows[0].FirstForCustomer).To(BeTrue())
		})

		It("adds nothing to the product summary", func() {
			Expect(summary).To(BeEmpty())
		})
	})

	When("an order has no invoice number", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{CustomerName: "Bob", Items: []OrderItem{{Description: "Shirt", Quantity: 1}}},
			}
		})

		It("shows N/A instead of an empty order id", func() {
			Expect(rows[0].OrderIDs).To(Equal("N/A"))
		})
	})

	When("duplicate invoice numbers arrive", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob"},
				{InvoiceNumber: "A1", CustomerName: "Bob"},
			}
		})

		It("stores each order id once", func() {
			Expect(rows[0].OrderIDs).To(Equal("A1"))
		})
	})

	When("the product summary needs sorting", func() {
		BeforeEach(func() {
			orders = []OrderData{
				{InvoiceNumber: "A1", CustomerName: "Bob", Items: []OrderItem{
					{Description: "zebra print", Quantity: 1},
					{Description: "Apple Case", Quantity: 1},
					{Description: "mug", Quantity: 1},
				}},
			}
		})

		It("orders names case-insensitively", func() {
			Expect(summary[0].Name).To(Equal("Apple Case"))
			Expect(summary[1].Name).To(Equal("mug"))
			Expect(summary[2].Name).To(Equal("zebra print"))
		})
	})

	When("the input is empty", func() {
		BeforeEach(func() {
			orders = nil
		})

		It("returns empty, non-nil slices", func() {
			Expect(rows).NotTo(BeNil())
			Expect(rows).To(BeEmpty())
			Expect(summary).NotTo(BeNil())
			Expect(summary).To(BeEmpty())
		})
	})
})

var _ = Describe("AggregateCSV", func() {
	It("writes the customer block, two blank lines, then the summary block", func() {
		rows, summary := BuildAggregate([]OrderData{
			{InvoiceNumber: "A1", CustomerName: "Bob", Items: []OrderItem{
				{Description: "Shirt", Variation: "Red", Quantity: 2},
			}},
		})
		out := AggregateCSV(rows, summary)
		lines := strings.Split(out, "\n")
		Expect(lines[0]).To(Equal("Name,Order ID,Product Name,Variation,QTY"))
		Expect(lines[1]).To(Equal(`"Bob","A1","Shirt","Red","2"`))
		Expect(lines[2]).To(Equal(""))
		Expect(lines[3]).To(Equal(""))
		Expect(lines[4]).To(Equal("Final Product Release Summary"))
		Expect(lines[5]).To(Equal("Product Name,Variation,Final Release Qty"))
		Expect(lines[6]).To(Equal(`"Shirt","Red","2"`))
	})
})
