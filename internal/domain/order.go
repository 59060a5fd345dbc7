package domain

import (
	"strings"
	"time"
)

type Order struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Product      string    `json:"product"`
	SalesChannel string    `json:"sales_channel"`
	Date         time.Time `json:"date"`
}

// Matches reports whether term is a case-sensitive substring of the customer
// name, the product or the sales channel. An empty term matches every order.
func (o Order) Matches(term string) bool {
	return strings.Contains(o.CustomerName, term) ||
		strings.Contains(o.Product, term) ||
		strings.Contains(o.SalesChannel, term)
}
