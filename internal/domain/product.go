package domain

// Product is a marketplace listing offered by a farmer. Quantity is the
// stock currently available, which caps what a cart may hold of it.
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PriceCents int64   `json:"priceCents"`
	Unit       string  `json:"unit"`
	Quantity   int     `json:"quantity"`
	Location   string  `json:"location"`
	DistanceKM int     `json:"distanceKm"`
	FarmerID   string  `json:"farmerId"`
	FarmerName string  `json:"farmerName"`
	Rating     float64 `json:"rating"`
	Category   string  `json:"category"`
	Organic    bool    `json:"organic"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

// CartLine builds the cart entry for buying qty units of the product.
func (p Product) CartLine(qty int) CartLine {
	return CartLine{
		ID:             p.ID,
		Name:           p.Name,
		UnitPriceCents: p.PriceCents,
		Unit:           p.Unit,
		Quantity:       qty,
		FarmerID:       p.FarmerID,
		FarmerName:     p.FarmerName,
		ImageURL:       p.ImageURL,
		MaxAvailable:   p.Quantity,
	}
}
