package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/infrastructure/repository"
	"github.com/ventasapp/ventas-api/pkg/apperror"
	"github.com/ventasapp/ventas-api/pkg/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// MockImageModerator is a mock implementation of ImageModerator
type MockImageModerator struct {
	mock.Mock
}

func (m *MockImageModerator) DetectLabels(ctx context.Context, img []byte) ([]string, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newProductTestService(t *testing.T) (*ProductService, *MockObjectStorage, *MockImageModerator, *gorm.DB, *entity.User) {
	t.Helper()

	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	storage := new(MockObjectStorage)
	moderator := new(MockImageModerator)
	svc := NewProductService(
		repository.NewProductRepository(db),
		storage,
		moderator,
		ProductImageConfig{
			MaxUploadSize: 1024 * 1024,
			MaxWidth:      640,
			Quality:       85,
			Prefix:        "media",
		},
		zap.NewNop(),
	)
	return svc, storage, moderator, db, owner
}

// testPNG encodes a small valid PNG of the given width
func testPNG(t *testing.T, width int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, 10))
	for x := 0; x < width; x++ {
		img.Set(x, 5, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProductService_CreateRejectsNegativePrice(t *testing.T) {
	svc, _, _, _, owner := newProductTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &CreateProductInput{
		UserID: owner.ID,
		Name:   "Yerba Mate 1kg",
		Price:  mustDecimal(t, "-1.00"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestProductService_ListSearchIsCaseInsensitive(t *testing.T) {
	svc, _, _, db, owner := newProductTestService(t)
	ctx := context.Background()

	yerba := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	seedProduct(t, db, owner, "Termo 1L", "25.00")

	result, err := svc.ListProducts(ctx, owner.ID, pagination.DefaultPagination(), "YERBA")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, yerba.ID, result.Items[0].ID)

	result, err = svc.ListProducts(ctx, owner.ID, pagination.DefaultPagination(), "azucar")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestProductService_UploadImage(t *testing.T) {
	svc, storage, moderator, db, owner := newProductTestService(t)
	ctx := context.Background()

	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	data := testPNG(t, 100)

	moderator.On("DetectLabels", mock.Anything, data).Return([]string{}, nil)

	keyMatcher := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "media/yerba-mate-1kg-") && strings.HasSuffix(key, ".jpg")
	})
	storage.On("Upload", mock.Anything, keyMatcher, mock.AnythingOfType("[]uint8"), "image/jpeg").Return(nil)
	storage.On("PublicURL", mock.AnythingOfType("string")).Return("https://bucket.s3.amazonaws.com/media/yerba-mate-1kg-x.jpg")

	updated, err := svc.UploadProductImage(ctx, owner.ID, product.ID, "photo.png", data)
	require.NoError(t, err)
	require.NotNil(t, updated.ImageKey)
	require.NotNil(t, updated.ImageURL)
	assert.True(t, strings.HasPrefix(*updated.ImageKey, "media/yerba-mate-1kg-"))

	storage.AssertExpectations(t)
	moderator.AssertExpectations(t)
}

func TestProductService_UploadImageReplacesPrevious(t *testing.T) {
	svc, storage, moderator, db, owner := newProductTestService(t)
	ctx := context.Background()

	previousKey := "media/yerba-mate-1kg-old.jpg"
	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	product.ImageKey = &previousKey
	require.NoError(t, db.Save(product).Error)

	data := testPNG(t, 100)

	moderator.On("DetectLabels", mock.Anything, data).Return([]string{}, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8"), "image/jpeg").Return(nil)
	storage.On("PublicURL", mock.AnythingOfType("string")).Return("https://bucket.s3.amazonaws.com/new.jpg")
	storage.On("Delete", mock.Anything, previousKey).Return(nil)

	_, err := svc.UploadProductImage(ctx, owner.ID, product.ID, "photo.jpg", data)
	require.NoError(t, err)

	storage.AssertCalled(t, "Delete", mock.Anything, previousKey)
}

func TestProductService_UploadImageRejectsOversize(t *testing.T) {
	svc, storage, moderator, db, owner := newProductTestService(t)
	ctx := context.Background()

	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	data := make([]byte, 1024*1024+1)

	_, err := svc.UploadProductImage(ctx, owner.ID, product.ID, "photo.jpg", data)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	// Rejected before moderation or storage are touched
	moderator.AssertNotCalled(t, "DetectLabels", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UploadImageRejectsExtension(t *testing.T) {
	svc, storage, moderator, db, owner := newProductTestService(t)
	ctx := context.Background()

	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")

	_, err := svc.UploadProductImage(ctx, owner.ID, product.ID, "document.pdf", []byte("%PDF"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	moderator.AssertNotCalled(t, "DetectLabels", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UploadImageRejectsModeratedContent(t *testing.T) {
	svc, storage, moderator, db, owner := newProductTestService(t)
	ctx := context.Background()

	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	data := testPNG(t, 100)

	moderator.On("DetectLabels", mock.Anything, data).Return([]string{"Explicit Nudity"}, nil)

	_, err := svc.UploadProductImage(ctx, owner.ID, product.ID, "photo.png", data)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UploadImageRejectsWhenModerationFails(t *testing.T) {
	svc, storage, moderator, db, owner := newProductTestService(t)
	ctx := context.Background()

	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	data := testPNG(t, 100)

	moderator.On("DetectLabels", mock.Anything, data).Return(nil, errors.New("throttled"))

	_, err := svc.UploadProductImage(ctx, owner.ID, product.ID, "photo.png", data)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UploadImageRejectsUndecodableData(t *testing.T) {
	svc, _, moderator, db, owner := newProductTestService(t)
	ctx := context.Background()

	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	data := []byte("not an image")

	moderator.On("DetectLabels", mock.Anything, data).Return([]string{}, nil)

	_, err := svc.UploadProductImage(ctx, owner.ID, product.ID, "photo.jpg", data)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestProductService_DeleteBlockedByInvoiceLines(t *testing.T) {
	svc, _, _, db, owner := newProductTestService(t)
	invoiceRepo := repository.NewInvoiceRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, owner)
	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")

	invoice := &entity.Invoice{
		UserID:       owner.ID,
		ClientID:     client.ID,
		Installments: 1,
		Lines: []entity.InvoiceLine{
			{ProductID: product.ID, Quantity: 1, UnitPrice: product.Price},
		},
	}
	require.NoError(t, invoiceRepo.Create(ctx, invoice))

	err := svc.DeleteProduct(ctx, owner.ID, product.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestProductService_DeleteRemovesStoredImage(t *testing.T) {
	svc, storage, _, db, owner := newProductTestService(t)
	ctx := context.Background()

	key := "media/yerba-mate-1kg-old.jpg"
	product := seedProduct(t, db, owner, "Yerba Mate 1kg", "10.00")
	product.ImageKey = &key
	require.NoError(t, db.Save(product).Error)

	storage.On("Delete", mock.Anything, key).Return(nil)

	require.NoError(t, svc.DeleteProduct(ctx, owner.ID, product.ID))
	storage.AssertCalled(t, "Delete", mock.Anything, key)
}
