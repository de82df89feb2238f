package batch

import (
	"time"

	"waybill-tracker/internal/order"
)

// Batch represents one upload of waybill images and the orders extracted
// from them. Orders keep their upload order; every report is derived from
// that sequence on demand and never stored.
type Batch struct {
	ID           string            `json:"id"`
	Platform     string            `json:"platform"`
	Orders       []order.OrderData `json:"orders"`
	FileNames    []string          `json:"file_names"`
	ContentTypes []string          `json:"content_types"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
