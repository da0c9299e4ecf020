package request

// InvoiceLineRequest represents a line item in an invoice request
type InvoiceLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	ClientID     string               `json:"client_id" binding:"required,uuid"`
	IssueDate    string               `json:"issue_date"`
	Installments int                  `json:"installments"`
	Lines        []InvoiceLineRequest `json:"lines" binding:"dive"`
}

// UpdateInvoiceRequest represents an invoice header update request
type UpdateInvoiceRequest struct {
	ClientID     *string `json:"client_id" binding:"omitempty,uuid"`
	IssueDate    *string `json:"issue_date"`
	Installments *int    `json:"installments" binding:"omitempty,min=1"`
}

// AddLineRequest represents a request to add a line to an invoice
type AddLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateLineRequest represents a request to change a line's quantity
type UpdateLineRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
