package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/domain/repository"
	"github.com/ventasapp/ventas-api/pkg/apperror"
	"github.com/ventasapp/ventas-api/pkg/imaging"
	"github.com/ventasapp/ventas-api/pkg/pagination"
	"github.com/ventasapp/ventas-api/pkg/utils"
	"go.uber.org/zap"
)

// ProductImageConfig holds upload validation and normalization settings
type ProductImageConfig struct {
	MaxUploadSize int64
	MaxWidth      int
	Quality       int
	Prefix        string
}

// ProductService handles product-related operations including image uploads
type ProductService struct {
	productRepo repository.ProductRepository
	storage     ObjectStorage
	moderator   ImageModerator
	imageCfg    ProductImageConfig
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	storage ObjectStorage,
	moderator ImageModerator,
	imageCfg ProductImageConfig,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
		moderator:   moderator,
		imageCfg:    imageCfg,
		logger:      logger,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID      uuid.UUID
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	product := &entity.Product{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists the user's products
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
}

// UpdateProduct updates an existing product. Price changes affect future
// invoice lines only; existing lines keep their snapshot price.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product. Products referenced by invoice lines
// cannot be deleted.
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	count, err := s.productRepo.CountInvoiceLines(ctx, userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Product is used in invoices and cannot be deleted")
	}

	if err := s.productRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	if product.ImageKey != nil {
		if err := s.storage.Delete(ctx, *product.ImageKey); err != nil {
			s.logger.Warn("Failed to delete product image from storage",
				zap.String("key", *product.ImageKey), zap.Error(err))
		}
	}

	return nil
}

// allowed upload extensions
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadProductImage validates, moderates, normalizes and stores a product
// image. The upload is rejected before touching storage if the file is too
// large, has a disallowed extension, or is flagged by moderation. On
// success the product's previous image object is removed.
func (s *ProductService) UploadProductImage(ctx context.Context, userID, productID uuid.UUID, filename string, data []byte) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if int64(len(data)) > s.imageCfg.MaxUploadSize {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Image exceeds the maximum size of %d bytes", s.imageCfg.MaxUploadSize))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, apperror.NewBadRequestError("Only JPG and PNG images are allowed")
	}

	labels, err := s.moderator.DetectLabels(ctx, data)
	if err != nil {
		s.logger.Error("Image moderation call failed", zap.Error(err))
		return nil, apperror.NewBadRequestError("Image could not be verified")
	}
	if len(labels) > 0 {
		return nil, apperror.NewBadRequestError("Image was rejected by content moderation")
	}

	normalized, err := imaging.Normalize(data, imaging.Options{
		MaxWidth: s.imageCfg.MaxWidth,
		Quality:  s.imageCfg.Quality,
	})
	if err != nil {
		return nil, apperror.NewBadRequestError("Image could not be processed")
	}

	key := fmt.Sprintf("%s/%s-%s.jpg", s.imageCfg.Prefix, utils.Slugify(product.Name), uuid.New())

	if err := s.storage.Upload(ctx, key, normalized, "image/jpeg"); err != nil {
		return nil, err
	}

	previousKey := product.ImageKey
	url := s.storage.PublicURL(key)
	product.ImageKey = &key
	product.ImageURL = &url

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if previousKey != nil && *previousKey != key {
		if err := s.storage.Delete(ctx, *previousKey); err != nil {
			s.logger.Warn("Failed to delete previous product image",
				zap.String("key", *previousKey), zap.Error(err))
		}
	}

	return product, nil
}
