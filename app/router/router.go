package router

import (
	"net/http"
	"path/filepath"

	"boutique-backoffice/app/controller"
)

type Controllers struct {
	Document *controller.DocumentController
	Order    *controller.OrderController
	Image    *controller.ImageController
}

// publicPrefixes are served straight from the public directory
var publicPrefixes = []string{"/images/", "/uploads/", "/static/"}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers, publicDir string) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Documents: /documents/{id}?type=... and /documents/{id}/pdf?type=...
	mux.HandleFunc("/documents/", controllers.Document.HandleDocuments)

	// Order editor: GET /orders/{id}/edit, POST /orders/{id}
	mux.HandleFunc("/orders/", controllers.Order.HandleOrders)

	// Order update API
	mux.HandleFunc("/api/orders/", controllers.Order.UpdateOrder)

	// Images routes
	// Materialize a backend image under the public directory
	mux.HandleFunc("/api/images/sync", controllers.Image.SyncImage)

	// Fallback candidates for a stored image reference
	mux.HandleFunc("/api/images/resolve", controllers.Image.ResolveImage)

	// Materialized images, uploads and static assets
	files := http.FileServer(http.Dir(filepath.Clean(publicDir)))
	for _, prefix := range publicPrefixes {
		mux.Handle(prefix, files)
	}
}
