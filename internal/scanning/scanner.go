package scanning

import "waybill-tracker/internal/order"

// ImageInput is one uploaded waybill photo ready to be sent for extraction.
type ImageInput struct {
	Data     []byte
	MimeType string
}

// Scanner defines the interface for waybill extraction operations
type Scanner interface {
	// ExtractOrders analyzes a set of waybill images (one order per image)
	// and returns the extracted orders in image order
	ExtractOrders(images []ImageInput, platform string) ([]order.OrderData, error)
	// Close closes the scanner and releases resources
	Close() error
}
