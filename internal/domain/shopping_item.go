package domain

type ShoppingItem struct {
	ID       int64  `json:"id"`
	Product  string `json:"product"`
	Supplier string `json:"supplier"`
}
