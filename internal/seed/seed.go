package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/usecase"
)

// Products loads the demo catalog on an empty database.
func Products(ctx context.Context, repo usecase.ProductRepo, log *slog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		log.Info("products already exist, skipping seeding")
		return nil
	}

	log.Info("database is empty, seeding initial product data")
	catalog := []domain.Product{
		{Name: "Laptop Pro", Description: "High-end workstation", Price: 1500.0, Quantity: 10},
		{Name: "Wireless Mouse", Description: "Ergonomic 2.4GHz", Price: 25.0, Quantity: 50},
		{Name: "Mechanical Keyboard", Description: "RGB Backlit Blue Switches", Price: 80.0, Quantity: 30},
		{Name: "Monitor 4K", Description: "27-inch IPS Panel", Price: 400.0, Quantity: 15},
		{Name: "USB-C Hub", Description: "7-in-1 Multiport Adapter", Price: 45.0, Quantity: 100},
		{Name: "Webcam HD", Description: "1080p with Microphone", Price: 60.0, Quantity: 25},
		{Name: "Gaming Headset", Description: "7.1 Surround Sound", Price: 90.0, Quantity: 20},
		{Name: "External SSD", Description: "1TB NVMe Portable", Price: 120.0, Quantity: 40},
		{Name: "Smartphone Stand", Description: "Adjustable Aluminum Holder", Price: 15.0, Quantity: 200},
		{Name: "Desk Mat", Description: "Large Waterproof Leather", Price: 20.0, Quantity: 60},
	}
	for i := range catalog {
		catalog[i].ID = uuid.NewString()
		if err := repo.Create(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("seed product %q: %w", catalog[i].Name, err)
		}
	}
	log.Info("seeded products", "count", len(catalog))
	return nil
}

// Orders places demo orders through the real creation path against the live
// catalog. Per-order failures (stock, unreachable catalog) are logged and
// skipped; seeding is a caller of the core, not part of it.
func Orders(ctx context.Context, create *usecase.CreateOrder, gateway usecase.ProductGateway, repo usecase.OrderRepo, log *slog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if n > 0 {
		log.Info("orders already exist, skipping seeding")
		return nil
	}

	products, err := gateway.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		log.Warn("no products found in product service, skipping order seeding")
		return nil
	}

	seeded := 0
	for i := 0; i < 10; i++ {
		in := usecase.CreateOrderInput{
			UserID: "seed-user-" + uuid.NewString()[:8],
		}
		for j := 0; j < rand.Intn(5)+1; j++ {
			p := products[rand.Intn(len(products))]
			in.Items = append(in.Items, usecase.ItemInput{
				ProductID: p.ID,
				Quantity:  rand.Intn(3) + 1,
			})
		}

		if _, err := create.Execute(ctx, in); err != nil {
			log.Warn("seed order skipped", "error", err)
			continue
		}
		seeded++
	}
	log.Info("seeded orders", "count", seeded)
	return nil
}
