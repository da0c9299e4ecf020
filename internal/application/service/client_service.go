package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/repository"
	"github.com/ventasapp/ventas-api/pkg/apperror"
	"github.com/ventasapp/ventas-api/pkg/pagination"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	UserID  uuid.UUID
	Name    string
	Surname string
	Email   string
	Phone   *string
	Address *string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	client := &entity.Client{
		UserID:  input.UserID,
		Name:    input.Name,
		Surname: input.Surname,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, userID, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists the user's clients
func (s *ClientService) ListClients(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	UserID  uuid.UUID
	ID      uuid.UUID
	Name    *string
	Surname *string
	Email   *string
	Phone   *string
	Address *string
}

// UpdateClient updates an existing client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Surname != nil {
		client.Surname = *input.Surname
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.Address != nil {
		client.Address = input.Address
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient deletes a client. Clients referenced by invoices cannot
// be deleted.
func (s *ClientService) DeleteClient(ctx context.Context, userID, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}

	count, err := s.clientRepo.CountInvoices(ctx, userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Client has invoices and cannot be deleted")
	}

	return s.clientRepo.Delete(ctx, userID, id)
}
