package dto

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Active      bool   `json:"activa"`
}
