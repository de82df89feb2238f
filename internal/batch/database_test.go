package batch

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"waybill-tracker/internal/order"
)

var _ = Describe("BoltDB", func() {
	var (
		db  *BoltDB
		err error
	)

	BeforeEach(func() {
		dbPath := filepath.Join(GinkgoT().TempDir(), "test.db")
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	Describe("SaveBatch and GetBatch", func() {
		var saved *Batch

		BeforeEach(func() {
			saved = &Batch{
				ID:        "batch-1",
				Platform:  "Shopee",
				FileNames: []string{"batch-1_0_a.jpg"},
				Orders: []order.OrderData{
					{InvoiceNumber: "A1", CustomerName: "Bob", Items: []order.OrderItem{
						{Description: "Shirt", Variation: "Red", Quantity: 2, UnitPrice: 10, Total: 20},
					}},
				},
				CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			}
			Expect(db.SaveBatch(saved)).To(Succeed())
		})

		It("round-trips the batch", func() {
			got, err := db.GetBatch("batch-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Platform).To(Equal("Shopee"))
			Expect(got.Orders).To(HaveLen(1))
			Expect(got.Orders[0].Items[0].Description).To(Equal("Shirt"))
			Expect(got.CreatedAt.Equal(saved.CreatedAt)).To(BeTrue())
		})

		It("overwrites on save with the same ID", func() {
			saved.Platform = "Lazada"
			Expect(db.SaveBatch(saved)).To(Succeed())
			got, err := db.GetBatch("batch-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Platform).To(Equal("Lazada"))
		})
	})

	Describe("GetBatch", func() {
		When("the batch does not exist", func() {
			It("returns the error", func() {
				_, err := db.GetBatch("missing")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("ListBatches", func() {
		When("the database is empty", func() {
			It("returns an empty, non-nil slice", func() {
				batches, err := db.ListBatches()
				Expect(err).NotTo(HaveOccurred())
				Expect(batches).NotTo(BeNil())
				Expect(batches).To(BeEmpty())
			})
		})

		When("batches exist", func() {
			BeforeEach(func() {
				Expect(db.SaveBatch(&Batch{ID: "batch-1"})).To(Succeed())
				Expect(db.SaveBatch(&Batch{ID: "batch-2"})).To(Succeed())
			})

			It("returns all of them", func() {
				batches, err := db.ListBatches()
				Expect(err).NotTo(HaveOccurred())
				Expect(batches).To(HaveLen(2))
			})
		})
	})

	Describe("DeleteBatch", func() {
		BeforeEach(func() {
			Expect(db.SaveBatch(&Batch{ID: "batch-1"})).To(Succeed())
		})

		It("removes the batch", func() {
			Expect(db.DeleteBatch("batch-1")).To(Succeed())
			_, err := db.GetBatch("batch-1")
			Expect(err).To(HaveOccurred())
		})
	})
})
