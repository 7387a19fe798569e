package domain

// Product is a catalog entry managed through the back office.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Stock       int
}
