package scanning

import "fmt"

// orderIDHint returns the platform-specific hint used in the extraction
// prompt. Each marketplace formats its order identifiers differently, and
// the models confuse them with tracking numbers without the nudge.
func orderIDHint(platform string) string {
	switch platform {
	case "Shopee":
		return "Shopee Order IDs are typically alphanumeric strings (e.g. 2309...)."
	case "Lazada":
		return "Lazada Order IDs are typically long numeric strings. Distinguish them from Tracking Numbers."
	case "Tiktok":
		return "TikTok Shop Order IDs are typically long numeric strings (often starting with 57...)."
	default:
		return "Order ID is usually found at the top."
	}
}

// waybillScanPrompt builds the shared prompt used by all LLM providers for
// scanning a batch of waybill images.
func waybillScanPrompt(platform string, imageCount int) string {
	return fmt.Sprintf(`Analyze these %d %s waybill images. Each image represents a separate order or waybill. Extract data for EACH image and return a list of orders.

For each order, specifically extract:
1. **Order ID**: %s Map this to 'invoiceNumber'.
2. **Customer Name**: The 'To' or 'Consignee' name.
3. **Courier Service**: Look for logos or text indicating the carrier. Common %s carriers include SPX, J&T, FLASH, LEX DO, YTO, Kerry, Ninja Van, XDE.
4. **Items**: Extract Product Name, Quantity, and specifically look for **Variation** (e.g., Color, Size, Model) if mentioned near the product name.

Also extract standard invoice fields if visible (totals, dates).

Return ONLY a valid JSON array, one object per image, in this exact shape:
[
  {
    "invoiceNumber": "string",
    "date": "string",
    "customerName": "string",
    "customerAddress": "string",
    "customerEmail": "string",
    "items": [
      {"description": "string", "variation": "string", "quantity": 0, "unitPrice": 0.00, "total": 0.00, "sku": "string"}
    ],
    "subtotal": 0.00,
    "tax": 0.00,
    "shippingCost": 0.00,
    "grandTotal": 0.00,
    "currency": "string",
    "trackingNumber": "string",
    "carrier": "string",
    "weight": "string"
  }
]

Important:
- Numbers must be numeric values, not strings
- Omit fields you cannot find rather than inventing values
- Do not include any text before or after the JSON
- Do not use markdown code blocks`, imageCount, platform, orderIDHint(platform), platform)
}
