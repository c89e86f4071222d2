package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"boutique-backoffice/models"
	"boutique-backoffice/repository"
	"boutique-backoffice/service"
	"boutique-backoffice/shop"
)

type fakeOrderRepository struct {
	mu      sync.Mutex
	orders  map[string]models.Order
	err     error
	updates map[string]map[string]any
}

func newFakeOrderRepository(orders map[string]models.Order) *fakeOrderRepository {
	return &fakeOrderRepository{orders: orders, updates: map[string]map[string]any{}}
}

var _ repository.OrderRepositoryInterface = (*fakeOrderRepository)(nil)

func (f *fakeOrderRepository) GetByID(ctx context.Context, id string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	order, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	f.updates[id] = fields
	return nil
}

type fakePDFService struct {
	renderURL string
	variant   models.DocumentVariant
	err       error
}

func (f *fakePDFService) GeneratePDF(ctx context.Context, renderURL string, variant models.DocumentVariant) ([]byte, error) {
	f.renderURL = renderURL
	f.variant = variant
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newTestDocuments(t *testing.T) *service.DocumentService {
	t.Helper()
	documents, err := service.NewDocumentService(shop.DefaultProfile(), service.NewQRService("https://shop.example.tn/verify"), service.NewImageResolver(""), nil)
	require.NoError(t, err)
	return documents
}
