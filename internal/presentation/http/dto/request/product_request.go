package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
	Price       string  `json:"price" binding:"required"`
	Stock       int     `json:"stock" binding:"min=0"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Stock       *int    `json:"stock" binding:"omitempty,min=0"`
}
