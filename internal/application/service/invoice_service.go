package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/repository"
	"github.com/ventasapp/ventas-api/pkg/apperror"
	"github.com/ventasapp/ventas-api/pkg/pagination"
)

// InvoiceService handles invoice and invoice line operations
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
	}
}

// InvoiceLineInput represents a line item on invoice creation
type InvoiceLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	UserID       uuid.UUID
	ClientID     uuid.UUID
	IssueDate    time.Time
	Installments int
	Lines        []InvoiceLineInput
}

// CreateInvoice creates a new invoice with its initial lines. Each line
// snapshots the product's current price as its unit price.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	client, err := s.clientRepo.GetByID(ctx, input.UserID, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	installments := input.Installments
	if installments < 1 {
		installments = 1
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	lines := make([]entity.InvoiceLine, 0, len(input.Lines))
	for _, li := range input.Lines {
		if li.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Line quantity must be at least 1")
		}
		product, err := s.productRepo.GetByID(ctx, input.UserID, li.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		lines = append(lines, entity.InvoiceLine{
			ProductID: product.ID,
			Quantity:  li.Quantity,
			UnitPrice: product.Price,
		})
	}

	invoice := &entity.Invoice{
		UserID:       input.UserID,
		ClientID:     input.ClientID,
		IssueDate:    issueDate,
		Installments: installments,
		Lines:        lines,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, input.UserID, invoice.ID)
}

// GetInvoice retrieves an invoice with its client, lines and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists the user's invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, userID uuid.UUID, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents the update invoice input
type UpdateInvoiceInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	ClientID     *uuid.UUID
	IssueDate    *time.Time
	Installments *int
}

// UpdateInvoice updates an invoice's header fields. Totals and status are
// derived and cannot be edited here.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, input.UserID, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		invoice.ClientID = *input.ClientID
	}
	if input.IssueDate != nil {
		invoice.IssueDate = *input.IssueDate
	}
	if input.Installments != nil {
		if *input.Installments < 1 {
			return nil, apperror.NewBadRequestError("Installments must be at least 1")
		}
		invoice.Installments = *input.Installments
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, input.UserID, input.ID)
}

// DeleteInvoice deletes an invoice and its lines. Invoices with recorded
// payments cannot be deleted.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, userID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	count, err := s.invoiceRepo.CountPayments(ctx, userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Invoice has payments and cannot be deleted")
	}

	return s.invoiceRepo.Delete(ctx, userID, id)
}

// AddLineInput represents the add line input
type AddLineInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// AddLine adds a line to an existing invoice, snapshotting the product's
// current price.
func (s *InvoiceService) AddLine(ctx context.Context, input *AddLineInput) (*entity.Invoice, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewBadRequestError("Line quantity must be at least 1")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.UserID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	product, err := s.productRepo.GetByID(ctx, input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	line := &entity.InvoiceLine{
		InvoiceID: input.InvoiceID,
		ProductID: product.ID,
		Quantity:  input.Quantity,
		UnitPrice: product.Price,
	}

	if err := s.invoiceRepo.AddLine(ctx, input.UserID, line); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, input.UserID, input.InvoiceID)
}

// UpdateLineInput represents the update line input
type UpdateLineInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
	LineID    uuid.UUID
	Quantity  int
}

// UpdateLine changes a line's quantity. The snapshot unit price never
// changes after the line is created.
func (s *InvoiceService) UpdateLine(ctx context.Context, input *UpdateLineInput) (*entity.Invoice, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewBadRequestError("Line quantity must be at least 1")
	}

	line, err := s.invoiceRepo.GetLine(ctx, input.UserID, input.InvoiceID, input.LineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Invoice line")
	}

	line.Quantity = input.Quantity

	if err := s.invoiceRepo.UpdateLine(ctx, input.UserID, line); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, input.UserID, input.InvoiceID)
}

// RemoveLine removes a line from an invoice
func (s *InvoiceService) RemoveLine(ctx context.Context, userID, invoiceID, lineID uuid.UUID) (*entity.Invoice, error) {
	line, err := s.invoiceRepo.GetLine(ctx, userID, invoiceID, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Invoice line")
	}

	if err := s.invoiceRepo.RemoveLine(ctx, userID, invoiceID, lineID); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, userID, invoiceID)
}
