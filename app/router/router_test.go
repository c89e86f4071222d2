package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backoffice/app/controller"
	"boutique-backoffice/models"
	"boutique-backoffice/repository"
	"boutique-backoffice/service"
	"boutique-backoffice/shop"
)

type emptyOrderRepository struct{}

func (emptyOrderRepository) GetByID(ctx context.Context, id string) (models.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (emptyOrderRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return repository.ErrOrderNotFound
}

func newTestMux(t *testing.T, publicDir string) *http.ServeMux {
	t.Helper()
	documents, err := service.NewDocumentService(shop.DefaultProfile(), service.NewQRService(""), service.NewImageResolver(""), nil)
	require.NoError(t, err)

	repo := emptyOrderRepository{}
	resolver := service.NewImageResolver("")
	mux := http.NewServeMux()
	SetupRoutes(mux, &Controllers{
		Document: controller.NewDocumentController(repo, documents, service.NewPDFService(""), "http://localhost:8080"),
		Order:    controller.NewOrderController(repo, documents),
		Image:    controller.NewImageController(service.NewImageService(publicDir, "", "", 0), resolver),
	}, publicDir)
	return mux
}

func TestPing(t *testing.T) {
	mux := newTestMux(t, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoutesReachControllers(t *testing.T) {
	mux := newTestMux(t, t.TempDir())

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/documents/1", http.StatusNotFound},
		{http.MethodGet, "/orders/1/edit", http.StatusNotFound},
		{http.MethodGet, "/api/images/resolve?entity=brands&value=a.png", http.StatusOK},
		{http.MethodGet, "/api/images/sync", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/orders/1", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, tt.status, rec.Code, tt.target)
	}
}

func TestPublicFiles(t *testing.T) {
	publicDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(publicDir, "uploads"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "uploads", "a.txt"), []byte("hello"), 0644))
	mux := newTestMux(t, publicDir)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/a.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
