package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventasapp/ventas-api/internal/application/service"
	"github.com/ventasapp/ventas-api/internal/domain/enum"
	"github.com/ventasapp/ventas-api/internal/domain/repository"
	"github.com/ventasapp/ventas-api/internal/presentation/http/dto/request"
	"github.com/ventasapp/ventas-api/internal/presentation/http/dto/response"
	"github.com/ventasapp/ventas-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

const dateLayout = "2006-01-02"

// List handles listing invoices with optional status, client and date filters
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.InvoiceStatus(statusStr)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid client ID filter")
			return
		}
		params.ClientID = &clientID
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		params.StartDate = &start
	}

	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		params.EndDate = &end
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	input := &service.CreateInvoiceInput{
		UserID:       *userID,
		ClientID:     clientID,
		Installments: req.Installments,
	}

	if req.IssueDate != "" {
		issueDate, err := time.Parse(dateLayout, req.IssueDate)
		if err != nil {
			response.BadRequest(c, "Invalid issue date")
			return
		}
		input.IssueDate = issueDate
	}

	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		input.Lines = append(input.Lines, service.InvoiceLineInput{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving a single invoice with its lines and payments
func (h *InvoiceHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating an invoice's header fields
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateInvoiceInput{
		UserID:       *userID,
		ID:           id,
		Installments: req.Installments,
	}

	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		input.ClientID = &clientID
	}

	if req.IssueDate != nil {
		issueDate, err := time.Parse(dateLayout, *req.IssueDate)
		if err != nil {
			response.BadRequest(c, "Invalid issue date")
			return
		}
		input.IssueDate = &issueDate
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// AddLine handles adding a line to an invoice
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	invoice, err := h.invoiceService.AddLine(c.Request.Context(), &service.AddLineInput{
		UserID:    *userID,
		InvoiceID: invoiceID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line added successfully", invoice)
}

// UpdateLine handles changing a line's quantity
func (h *InvoiceHandler) UpdateLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateLine(c.Request.Context(), &service.UpdateLineInput{
		UserID:    *userID,
		InvoiceID: invoiceID,
		LineID:    lineID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line updated successfully", invoice)
}

// RemoveLine handles removing a line from an invoice
func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	invoice, err := h.invoiceService.RemoveLine(c.Request.Context(), *userID, invoiceID, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line removed successfully", invoice)
}
