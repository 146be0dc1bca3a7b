// Package seed writes the demonstration product catalog. There is no real
// supplier feed; this stands in for it.
package seed

import (
	"context"

	"agriconnect/internal/catalog"
	"agriconnect/internal/domain"
	"agriconnect/internal/kv"
)

// Apply stores the default catalog, overwriting any existing one.
func Apply(ctx context.Context, store kv.Store) error {
	return catalog.New(store).Replace(ctx, Products())
}

// Products is the demonstration marketplace inventory.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Organic Tomatoes", PriceCents: 299, Unit: "kg", Quantity: 50,
			Location: "Green Valley Farm", DistanceKM: 15, FarmerID: "farmer-1", FarmerName: "Paras Agrawal",
			Rating: 4.5, Category: "vegetables", Organic: true,
		},
		{
			ID: "2", Name: "Fresh Lettuce", PriceCents: 149, Unit: "head", Quantity: 30,
			Location: "Riverside Gardens", DistanceKM: 8, FarmerID: "farmer-2", FarmerName: "Joy Agrawal",
			Rating: 4.2, Category: "vegetables", Organic: true,
		},
		{
			ID: "3", Name: "Free-Range Eggs", PriceCents: 399, Unit: "dozen", Quantity: 20,
			Location: "Sunny Meadows", DistanceKM: 12, FarmerID: "farmer-3", FarmerName: "Mayank Gaur",
			Rating: 4.8, Category: "dairy", Organic: false,
		},
		{
			ID: "4", Name: "Organic Apples", PriceCents: 249, Unit: "kg", Quantity: 40,
			Location: "Orchard Hills", DistanceKM: 20, FarmerID: "farmer-4", FarmerName: "Pushpendra Singh",
			Rating: 4.0, Category: "fruits", Organic: true,
		},
		{
			ID: "5", Name: "Fresh Milk", PriceCents: 199, Unit: "liter", Quantity: 25,
			Location: "Green Pastures", DistanceKM: 18, FarmerID: "farmer-5", FarmerName: "Anjali Singh",
			Rating: 4.6, Category: "dairy", Organic: false,
		},
		{
			ID: "6", Name: "Honey", PriceCents: 899, Unit: "jar", Quantity: 15,
			Location: "Bee Haven", DistanceKM: 25, FarmerID: "farmer-6", FarmerName: "Harsh Sharma",
			Rating: 4.9, Category: "other", Organic: true,
		},
		{
			ID: "7", Name: "Carrots", PriceCents: 129, Unit: "kg", Quantity: 60,
			Location: "Root Farm", DistanceKM: 10, FarmerID: "farmer-7", FarmerName: "Rajdeep Singh",
			Rating: 4.3, Category: "vegetables", Organic: false,
		},
		{
			ID: "8", Name: "Strawberries", PriceCents: 349, Unit: "basket", Quantity: 35,
			Location: "Berry Fields", DistanceKM: 22, FarmerID: "farmer-8", FarmerName: "Yash Agrawal",
			Rating: 4.7, Category: "fruits", Organic: true,
		},
	}
}
