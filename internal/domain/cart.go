package domain

// CartLine is a single product entry in a retailer's cart. Quantity is
// expected to stay within [1, MaxAvailable]; the cart store enforces the
// upper bound on mutation.
type CartLine struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Unit           string `json:"unit"`
	Quantity       int    `json:"quantity"`
	FarmerID       string `json:"farmerId"`
	FarmerName     string `json:"farmerName"`
	ImageURL       string `json:"imageUrl,omitempty"`
	MaxAvailable   int    `json:"maxAvailable"`
}

// TotalCents is the line total at the current quantity.
func (l CartLine) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}
