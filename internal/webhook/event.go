package webhook

import "encoding/json"

// OrderEvent is the partner-supplied order payload. Every field is optional:
// the payload is untrusted until verified and defensively decoded after.
// Shopify omits or nulls fields freely, so nothing here may be assumed present.
type OrderEvent struct {
	ID             json.Number   `json:"id"`
	Name           string        `json:"name"`
	OrderNumber    json.Number   `json:"order_number"`
	Phone          string        `json:"phone"`
	TotalPrice     string        `json:"total_price"`
	Currency       string        `json:"currency"`
	ShopDomain     string        `json:"myshopify_domain"`
	Customer       *Customer     `json:"customer"`
	BillingAddress *Address      `json:"billing_address"`
	Fulfillments   []Fulfillment `json:"fulfillments"`
}

// Customer is the order's customer sub-object; may be absent or null.
type Customer struct {
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
}

// Address carries the billing-address phone fallback.
type Address struct {
	Phone string `json:"phone"`
}

// Fulfillment is one shipment record on a fulfilled order.
type Fulfillment struct {
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

// ResolvePhone returns the destination phone following the fixed precedence:
// customer.phone, then order.phone, then billing_address.phone. Empty string
// means the event has no reachable recipient and is a no-op.
func (e *OrderEvent) ResolvePhone() string {
	if e.Customer != nil && e.Customer.Phone != "" {
		return e.Customer.Phone
	}
	if e.Phone != "" {
		return e.Phone
	}
	if e.BillingAddress != nil && e.BillingAddress.Phone != "" {
		return e.BillingAddress.Phone
	}
	return ""
}

// CustomerName returns the customer's first name, or "Customer" when the
// customer object or name is missing.
func (e *OrderEvent) CustomerName() string {
	if e.Customer != nil && e.Customer.FirstName != "" {
		return e.Customer.FirstName
	}
	return "Customer"
}

// OrderLabel returns the human-facing order reference: the numeric
// order_number, falling back to the order name, then "N/A".
func (e *OrderEvent) OrderLabel() string {
	if e.OrderNumber.String() != "" {
		return e.OrderNumber.String()
	}
	if e.Name != "" {
		return e.Name
	}
	return "N/A"
}

// Total returns the order total prefixed with the currency when present.
func (e *OrderEvent) Total() string {
	price := e.TotalPrice
	if price == "" {
		price = "0"
	}
	if e.Currency != "" {
		return e.Currency + " " + price
	}
	return price
}

// Tracking returns the tracking number and URL from the first fulfillment
// record, or empty strings when no fulfillment carries them.
func (e *OrderEvent) Tracking() (number, url string) {
	if len(e.Fulfillments) == 0 {
		return "", ""
	}
	return e.Fulfillments[0].TrackingNumber, e.Fulfillments[0].TrackingURL
}
