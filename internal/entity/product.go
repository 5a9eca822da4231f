package domain

// Product lives in the catalog service. The order side never holds one of
// these directly; it sees snapshots through the product gateway.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
}
