package models

// Offer представляет акционное предложение на сайте
type Offer struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DiscountPct int    `json:"discount_pct"`
	ValidUntil  string `json:"valid_until"`
	VehicleID   *uint  `json:"vehicle_id,omitempty"`
}
