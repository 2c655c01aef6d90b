package models

// OrderConfirmation is returned when an order is completed
// Example response: {"orderNumber": "ORD-1767520200000", "total": 85000}
type OrderConfirmation struct {
	OrderNumber string `json:"orderNumber"`
	Total       int64  `json:"total"`
}
