package entity

// Category agrupa productos en el catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
}
